// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log    LogConfig    `mapstructure:"log"    validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	Engine EngineConfig `mapstructure:"engine" validate:"required"`
}

// LogConfig contains the logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig contains the settings for the file-backed store used by the CLI.
type StoreConfig struct {
	DataDir string `mapstructure:"data_dir" validate:"required"`
}

// EngineConfig contains the scheduling engine settings.
type EngineConfig struct {
	// MaxReviewsPerDay caps a student's daily review session.
	MaxReviewsPerDay int `mapstructure:"max_reviews_per_day" validate:"required,gt=0,lte=100"`

	// Timezone is the IANA name of the deployment's calendar-day timezone.
	Timezone string `mapstructure:"timezone" validate:"required"`

	// Algorithm parameter overrides. Zero values keep the built-in defaults.
	MinEaseFactor      float64 `mapstructure:"min_ease_factor"      validate:"omitempty,gt=1"`
	MaxEaseFactor      float64 `mapstructure:"max_ease_factor"      validate:"omitempty,gt=1"`
	SuccessThreshold   float64 `mapstructure:"success_threshold"    validate:"omitempty,gt=0,lte=5"`
	FailureEasePenalty float64 `mapstructure:"failure_ease_penalty" validate:"omitempty,gt=0,lt=1"`
}
