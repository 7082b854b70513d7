package controllers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ElCannibal-666/Uptask-Backend/models"
	"github.com/ElCannibal-666/Uptask-Backend/services"
	"github.com/ElCannibal-666/Uptask-Backend/store"
	"github.com/ElCannibal-666/Uptask-Backend/utils"
)

var validate = validator.New()

// AuthController holds the collaborators every account operation needs.
// Everything is injected at construction, nothing is read from globals.
type AuthController struct {
	Store    *store.Store
	Mail     services.Mailer
	Sessions *utils.SessionIssuer
}

type CreateAccountInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (ctl *AuthController) CreateAccount(c *fiber.Ctx) error {
	var input CreateAccountInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Prevent duplicate accounts
	_, err := ctl.Store.UserByEmail(input.Email)
	if err == nil {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "El usuario ya esta registrado"})
	} else if err != store.ErrNotFound {
		return unexpected(c, err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return unexpected(c, err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := ctl.Store.CreateUser(user); err != nil {
		return unexpected(c, err)
	}

	// User and token are two separate writes. If the second one is lost, the
	// resend-confirmation flow recovers the account.
	if err := ctl.newConfirmationToken(user); err != nil {
		return unexpected(c, err)
	}

	return c.SendString("Cuenta creada, revisa tu email para confirmarla")
}

type ConfirmAccountInput struct {
	Token string `json:"token" validate:"required"`
}

func (ctl *AuthController) ConfirmAccount(c *fiber.Ctx) error {
	var input ConfirmAccountInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := ctl.Store.TokenByCode(input.Token)
	if err == store.ErrNotFound {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Token no valido"})
	} else if err != nil {
		return unexpected(c, err)
	}

	if err := ctl.Store.SetConfirmed(token.UserID); err != nil {
		return unexpected(c, err)
	}
	if err := ctl.Store.DeleteToken(token.ID); err != nil {
		return unexpected(c, err)
	}

	return c.SendString("Cuenta confirmada correctamente")
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := ctl.Store.UserByEmail(input.Email)
	if err == store.ErrNotFound {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Usuario no encontrado"})
	} else if err != nil {
		return unexpected(c, err)
	}

	if !user.Confirmed {
		// Give the user a fresh code instead of leaving them stuck.
		if err := ctl.newConfirmationToken(user); err != nil {
			return unexpected(c, err)
		}
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "La cuenta no ha sido confirmada, hemos enviado un e-mail de confirmacion",
		})
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "La contraseña es incorrecta"})
	}

	sessionToken, err := ctl.Sessions.Issue(user.ID)
	if err != nil {
		return unexpected(c, err)
	}

	return c.SendString(sessionToken)
}

type RequestCodeInput struct {
	Email string `json:"email" validate:"required,email"`
}

func (ctl *AuthController) RequestConfirmationCode(c *fiber.Ctx) error {
	var input RequestCodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := ctl.Store.UserByEmail(input.Email)
	if err == store.ErrNotFound {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "El usuario no esta registrado"})
	} else if err != nil {
		return unexpected(c, err)
	}

	if user.Confirmed {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "El usuario ya ha sido confirmado"})
	}

	if err := ctl.newConfirmationToken(user); err != nil {
		return unexpected(c, err)
	}

	return c.SendString("Se envió un nuevo token a tu email para confirmar la cuenta")
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

func (ctl *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var input ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := ctl.Store.UserByEmail(input.Email)
	if err == store.ErrNotFound {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "El usuario no esta registrado"})
	} else if err != nil {
		return unexpected(c, err)
	}

	code, err := utils.GenerateToken()
	if err != nil {
		return unexpected(c, err)
	}
	if err := ctl.Store.CreateToken(&models.Token{Code: code, UserID: user.ID}); err != nil {
		return unexpected(c, err)
	}
	ctl.Mail.SendPasswordResetEmail(user.Email, user.Name, code)

	return c.SendString("Revisa tu email para instrucciones")
}

type ValidateTokenInput struct {
	Token string `json:"token" validate:"required"`
}

func (ctl *AuthController) ValidateToken(c *fiber.Ctx) error {
	var input ValidateTokenInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := ctl.Store.TokenByCode(input.Token); err == store.ErrNotFound {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Token no valido"})
	} else if err != nil {
		return unexpected(c, err)
	}

	return c.SendString("Token válido, define tu nueva contraseña")
}

type UpdatePasswordWithTokenInput struct {
	Password string `json:"password" validate:"required,min=8"`
}

// UpdatePasswordWithToken sets a new password for the user a reset token
// belongs to. The token travels in the path, the password in the body.
func (ctl *AuthController) UpdatePasswordWithToken(c *fiber.Ctx) error {
	var input UpdatePasswordWithTokenInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := ctl.Store.TokenByCode(c.Params("token"))
	if err == store.ErrNotFound {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Token no valido"})
	} else if err != nil {
		return unexpected(c, err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return unexpected(c, err)
	}
	if err := ctl.Store.UpdatePassword(token.UserID, hash); err != nil {
		return unexpected(c, err)
	}
	if err := ctl.Store.DeleteToken(token.ID); err != nil {
		return unexpected(c, err)
	}

	return c.SendString("La contraseña se modifico correctamente")
}

// newConfirmationToken stores a fresh code for the user and mails it.
func (ctl *AuthController) newConfirmationToken(user *models.User) error {
	code, err := utils.GenerateToken()
	if err != nil {
		return err
	}
	if err := ctl.Store.CreateToken(&models.Token{Code: code, UserID: user.ID}); err != nil {
		return err
	}
	ctl.Mail.SendConfirmationEmail(user.Email, user.Name, code)
	return nil
}

func unexpected(c *fiber.Ctx, err error) error {
	log.Printf("Unexpected error on %s: %v", c.Path(), err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Hubo un error"})
}
