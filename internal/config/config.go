// Package config loads the process-wide configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Config holds every runtime setting. It is built once by Load and then
// passed by pointer to the components that need it.
type Config struct {
	AppPort string

	DBDriver    string // "postgres" or "sqlite"
	DatabaseDSN string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	AuthRateLimitMax    int
	AuthRateLimitWindow time.Duration

	CORSOrigins string

	RabbitMQURL    string
	EventsExchange string
	EventsQueue    string

	AdminName     string
	AdminEmail    string
	AdminPassword string
	AdminAddress  string
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "storerate.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("AUTH_RATE_LIMIT_MAX", 20)
	v.SetDefault("AUTH_RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "storerate.events")
	v.SetDefault("EVENTS_QUEUE", "storerate_events")
	v.SetDefault("ADMIN_NAME", "Default Platform Administrator")
	v.SetDefault("ADMIN_EMAIL", "admin@storerate.local")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_ADDRESS", "HQ")
}

// Load reads configuration from the environment and, if present, a
// config.yaml in the working directory or /etc/storerate. Environment
// variables take precedence over the file.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/storerate")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		DBDriver:            strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		TokenTTL:            v.GetDuration("TOKEN_TTL"),
		BcryptCost:          v.GetInt("BCRYPT_COST"),
		AuthRateLimitMax:    v.GetInt("AUTH_RATE_LIMIT_MAX"),
		AuthRateLimitWindow: v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
		CORSOrigins:         v.GetString("CORS_ORIGINS"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		EventsExchange:      v.GetString("EVENTS_EXCHANGE"),
		EventsQueue:         v.GetString("EVENTS_QUEUE"),
		AdminName:           v.GetString("ADMIN_NAME"),
		AdminEmail:          v.GetString("ADMIN_EMAIL"),
		AdminPassword:       v.GetString("ADMIN_PASSWORD"),
		AdminAddress:        v.GetString("ADMIN_ADDRESS"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must be set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.AuthRateLimitMax <= 0 || c.AuthRateLimitWindow <= 0 {
		return errors.New("AUTH_RATE_LIMIT_MAX and AUTH_RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// EventsEnabled reports whether domain events should be published to RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
