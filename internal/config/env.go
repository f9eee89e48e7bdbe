package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	dserrors "github.com/systmms/dataseeder/internal/errors"
)

// Environment variables read by the query API
const (
	EnvConnectionString = "CONNECTION_STRING"
	EnvDatabaseName     = "DATABASE_NAME"
	EnvCollectionName   = "COLLECTION_NAME"
	EnvListenPort       = "SERVER_LISTEN_PORT"
	EnvDebug            = "DEBUG"

	DefaultListenPort = 8000
)

// ServerConfig is the query API configuration, read once at startup
type ServerConfig struct {
	Connection ConnectionConfig
	Port       int
	Debug      bool
}

// Addr is the listen address for the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LoadFromEnv reads the server configuration from the process environment,
// after loading a .env file from the working directory if one exists.
func LoadFromEnv() (ServerConfig, error) {
	// load .env if present but don't error if not present
	_ = godotenv.Load()
	return loadServerConfig(os.Getenv)
}

func loadServerConfig(getenv func(string) string) (ServerConfig, error) {
	cfg := ServerConfig{
		Connection: NewConnectionConfig(
			getenv(EnvConnectionString),
			getenv(EnvDatabaseName),
			getenv(EnvCollectionName),
		),
		Port: DefaultListenPort,
	}

	if err := cfg.Connection.Validate(); err != nil {
		cfg.Connection.Destroy()
		return ServerConfig{}, dserrors.UserError{
			Message:    fmt.Sprintf("%s, %s and %s must be set", EnvConnectionString, EnvDatabaseName, EnvCollectionName),
			Suggestion: "Export them or put them in a .env file next to the binary",
			Err:        err,
		}
	}

	if raw := getenv(EnvListenPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			cfg.Connection.Destroy()
			return ServerConfig{}, dserrors.ConfigError{
				Field:   EnvListenPort,
				Value:   raw,
				Message: "port must be a number between 1 and 65535",
			}
		}
		cfg.Port = port
	}

	if raw := getenv(EnvDebug); raw != "" {
		cfg.Debug, _ = strconv.ParseBool(raw)
	}

	return cfg, nil
}
