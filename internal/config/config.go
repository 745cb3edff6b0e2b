// Package config loads and validates application configuration.
package config

// Config holds all application configuration, organized into logical
// groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Policy   PolicyConfig   `mapstructure:"policy"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains token verification settings. Token issuance lives
// in the platform's auth service; the engine only verifies.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// PolicyConfig exposes the scheduling policy knobs that operations may
// recalibrate without a deploy. Zero values keep the defaults.
type PolicyConfig struct {
	DefaultEase     float64 `mapstructure:"default_ease" validate:"omitempty,gt=1"`
	MinEase         float64 `mapstructure:"min_ease" validate:"omitempty,gt=1"`
	MaxIntervalDays int     `mapstructure:"max_interval_days" validate:"omitempty,gt=0"`
	MasteryStreak   int     `mapstructure:"mastery_streak" validate:"omitempty,gt=0"`
}
