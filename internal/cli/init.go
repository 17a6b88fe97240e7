// Package cli provides common initialization for the dashboard binary.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/alan-facto/FictionBI-Dashboard/internal/config"
	"github.com/alan-facto/FictionBI-Dashboard/internal/log"
)

// SetupLogger initializes structured logging and sets it as the slog default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}
