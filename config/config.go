package config

import (
	"errors"
	"os"
	"strconv"
)

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Config carries everything the service needs at startup. Values are read
// once from the environment; components receive what they need at
// construction instead of reading os.Getenv themselves.
type Config struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string
	FrontendURL string
	SMTP        SMTPConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "4000"),
		DatabaseDSN: getenv("DB_DSN", "uptask.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: getenv("SMTP_FROM", "UpTask <admin@uptask.com>"),
		},
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 2525
	}
	cfg.SMTP.Port = port

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
