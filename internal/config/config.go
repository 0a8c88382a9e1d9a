// Package config loads environment configuration for the server.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvConfig holds the server's environment configuration.
type EnvConfig struct {
	APP_PORT      string
	LOG_LEVEL     string
	MAX_UPLOAD_MB int
}

// DefaultEnvConfig is the process-wide configuration, populated by
// LoadEnvConfig.
var DefaultEnvConfig = EnvConfig{
	APP_PORT:      "8000",
	LOG_LEVEL:     "info",
	MAX_UPLOAD_MB: 32,
}

// LoadEnvConfig reads a .env file when present and overlays process
// environment variables onto the defaults. A missing .env file is not an
// error.
func LoadEnvConfig() error {
	_ = godotenv.Load()

	if v := os.Getenv("APP_PORT"); v != "" {
		DefaultEnvConfig.APP_PORT = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		DefaultEnvConfig.LOG_LEVEL = v
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		DefaultEnvConfig.MAX_UPLOAD_MB = n
	}
	return nil
}
