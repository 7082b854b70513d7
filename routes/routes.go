package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/time/rate"

	"github.com/ElCannibal-666/Uptask-Backend/controllers"
	"github.com/ElCannibal-666/Uptask-Backend/middleware"
	"github.com/ElCannibal-666/Uptask-Backend/store"
	"github.com/ElCannibal-666/Uptask-Backend/utils"
)

// Setup wires the HTTP routes onto a new Fiber app.
func Setup(ctl *controllers.AuthController, sessions *utils.SessionIssuer, db *store.Store, frontendURL string) *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: frontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// authLimiter: 1 req/sec, burst 5
	authLimiter := middleware.NewIPRateLimiter(rate.Limit(1), 5).Handler()

	api := app.Group("/api")
	auth := api.Group("/auth")

	auth.Post("/create-account", authLimiter, ctl.CreateAccount)
	auth.Post("/confirm-account", ctl.ConfirmAccount)
	auth.Post("/login", authLimiter, ctl.Login)
	auth.Post("/request-code", authLimiter, ctl.RequestConfirmationCode)
	auth.Post("/forgot-password", authLimiter, ctl.ForgotPassword)
	auth.Post("/validate-token", ctl.ValidateToken)
	auth.Post("/update-password/:token", authLimiter, ctl.UpdatePasswordWithToken)

	// Authenticated routes
	authed := auth.Group("", middleware.AuthRequired(sessions, db))

	authed.Get("/user", ctl.User)
	authed.Put("/profile", ctl.UpdateProfile)
	authed.Post("/update-password", ctl.UpdateCurrentUserPassword)
	authed.Post("/check-password", ctl.CheckPassword)

	return app
}
