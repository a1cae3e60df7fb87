// Package config loads the runtime configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the server.
type Config struct {
	MongoURL     string `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"projecthub"`

	Host      string `env:"HOST" envDefault:"0.0.0.0"`
	Port      int    `env:"PORT" envDefault:"8000"`
	APIPrefix string `env:"API_PREFIX"`
	Debug     bool   `env:"DEBUG"`

	CORSOrigins []string `env:"BACKEND_CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	PopulateDB bool `env:"POPULATE_DB"`

	// UseAuth turns on the bearer-token middleware; JWTSecret signs and
	// verifies the tokens.
	UseAuth   bool   `env:"USE_MIDDLEWARE"`
	JWTSecret string `env:"JWT_SECRET"`

	TracingEnabled  bool   `env:"OTEL_ENABLED"`
	TracingEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	ServiceName     string `env:"OTEL_SERVICE_NAME" envDefault:"projecthub"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present. Legacy variable names
// (MONGO_URI, DB_NAME, SERVER_PORT) are honored when the current ones are
// unset.
func Load() (Config, error) {
	_ = godotenv.Load()
	applyLegacyNames()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.UseAuth && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("USE_MIDDLEWARE requires JWT_SECRET to be set")
	}
	return cfg, nil
}

func applyLegacyNames() {
	for current, legacy := range map[string]string{
		"MONGODB_URL":   "MONGO_URI",
		"DATABASE_NAME": "DB_NAME",
		"PORT":          "SERVER_PORT",
	} {
		if os.Getenv(current) == "" {
			if v := os.Getenv(legacy); v != "" {
				os.Setenv(current, v)
			}
		}
	}
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
