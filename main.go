package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/ElCannibal-666/Uptask-Backend/config"
	"github.com/ElCannibal-666/Uptask-Backend/controllers"
	"github.com/ElCannibal-666/Uptask-Backend/routes"
	"github.com/ElCannibal-666/Uptask-Backend/services"
	"github.com/ElCannibal-666/Uptask-Backend/store"
	"github.com/ElCannibal-666/Uptask-Backend/utils"
)

const sessionTTL = 180 * 24 * time.Hour

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := config.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	ctl := &controllers.AuthController{
		Store:    store.New(db),
		Mail:     services.NewSMTPMailer(cfg.SMTP, cfg.FrontendURL),
		Sessions: utils.NewSessionIssuer([]byte(cfg.JWTSecret), sessionTTL),
	}

	app := routes.Setup(ctl, ctl.Sessions, ctl.Store, cfg.FrontendURL)

	log.Printf("Server running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
