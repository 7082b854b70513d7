package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ElCannibal-666/Uptask-Backend/models"
	"github.com/ElCannibal-666/Uptask-Backend/store"
	"github.com/ElCannibal-666/Uptask-Backend/utils"
)

const userKey = "user"

// AuthRequired ensures that the request carries a valid bearer session token
// and resolves it back to an existing user.
func AuthRequired(sessions *utils.SessionIssuer, db *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "No autorizado"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "No autorizado"})
		}

		userID, err := sessions.Verify(parts[1])
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Token no valido"})
		}

		user, err := db.UserByID(userID)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Token no valido"})
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired for this request.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
