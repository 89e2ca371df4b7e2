// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ShapePolicy selects how the creation pipeline checks the shape of an incoming payload.
type ShapePolicy string

const (
	// ShapePolicyExact requires the payload to contain exactly the expected keys, no extras.
	ShapePolicyExact ShapePolicy = "exact"
	// ShapePolicyRequired requires all expected keys to be present and non-empty; extras are ignored.
	ShapePolicyRequired ShapePolicy = "required"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; required by cmd/server, cmd/migrate and cmd/seed.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// CreateShapePolicy is the payload-shape check for user creation: "exact" or "required".
	CreateShapePolicy string `mapstructure:"CREATE_SHAPE_POLICY"`
	// ListLimit caps the number of users returned by the list endpoint.
	ListLimit int `mapstructure:"LIST_LIMIT"`
	// OTLPEndpoint is the OTLP gRPC collector endpoint (e.g. http://localhost:4317). Empty disables telemetry export.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("CREATE_SHAPE_POLICY", string(ShapePolicyExact))
	v.SetDefault("LIST_LIMIT", 20)
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("config: HTTP_ADDR must be set")
	}
	switch ShapePolicy(cfg.CreateShapePolicy) {
	case ShapePolicyExact, ShapePolicyRequired:
	default:
		return nil, fmt.Errorf("config: CREATE_SHAPE_POLICY must be %q or %q, got %q",
			ShapePolicyExact, ShapePolicyRequired, cfg.CreateShapePolicy)
	}
	if cfg.ListLimit <= 0 {
		return nil, fmt.Errorf("config: LIST_LIMIT must be positive, got %d", cfg.ListLimit)
	}

	return &cfg, nil
}

// ShapePolicyValue returns the configured shape policy as a typed value.
func (c *Config) ShapePolicyValue() ShapePolicy {
	return ShapePolicy(c.CreateShapePolicy)
}
