package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ElCannibal-666/Uptask-Backend/middleware"
	"github.com/ElCannibal-666/Uptask-Backend/store"
	"github.com/ElCannibal-666/Uptask-Backend/utils"
)

// User returns the authenticated user resolved by the middleware.
func (ctl *AuthController) User(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (ctl *AuthController) UpdateProfile(c *fiber.Ctx) error {
	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := middleware.CurrentUser(c)

	// The new email may only collide with the user's own record.
	existing, err := ctl.Store.UserByEmail(input.Email)
	if err == nil && existing.ID != user.ID {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "Ese email ya esta registrado"})
	} else if err != nil && err != store.ErrNotFound {
		return unexpected(c, err)
	}

	user.Name = input.Name
	user.Email = input.Email
	if err := ctl.Store.UpdateUser(user); err != nil {
		return unexpected(c, err)
	}

	return c.SendString("Perfil actualizado correctamente")
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
}

func (ctl *AuthController) UpdateCurrentUserPassword(c *fiber.Ctx) error {
	var input UpdatePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := middleware.CurrentUser(c)

	if !utils.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "El password actual es incorrecto"})
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return unexpected(c, err)
	}
	if err := ctl.Store.UpdatePassword(user.ID, hash); err != nil {
		return unexpected(c, err)
	}

	return c.SendString("El password se modificó correctamente")
}

type CheckPasswordInput struct {
	Password string `json:"password" validate:"required"`
}

// CheckPassword re-verifies the current password before sensitive frontend
// actions, without changing anything.
func (ctl *AuthController) CheckPassword(c *fiber.Ctx) error {
	var input CheckPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := middleware.CurrentUser(c)

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "El password es incorrecto"})
	}

	return c.SendString("Password Correcto")
}
