// internal/config/config.go
//
// Environment-driven configuration for the server process.
// Values are parsed from the environment (a .env file is loaded first by
// main); every field has a development-friendly default.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// DBPath selects the backend: empty keeps games in memory, a file
	// path (or ":memory:") enables the SQLite store.
	DBPath string `env:"DB_PATH" envDefault:""`

	// LogLevel is a zerolog level name (trace, debug, info, ...).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// ClientOrigin is the single origin allowed by CORS.
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	// RandomOrgEnabled switches secret generation to the random.org API
	// (with a local fallback). Off by default so dev runs make no
	// network calls.
	RandomOrgEnabled bool   `env:"RANDOM_ORG_ENABLED" envDefault:"false"`
	RandomOrgAPIKey  string `env:"RANDOM_ORG_API_KEY" envDefault:""`

	// AdminPassword gates scoreboard reset; JWTSecret signs the admin
	// token issued on login.
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"dev_admin_change_me"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
