package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// Key-value store holding the group directory
	KVPath     string `mapstructure:"KV_PATH"`
	KVInMemory bool   `mapstructure:"KV_IN_MEMORY"`
	GroupsKey  string `mapstructure:"GROUPS_KEY"`

	// Auth configuration
	JWTSecret  string `mapstructure:"JWT_SECRET"`
	CronSecret string `mapstructure:"CRON_SECRET"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Link checking and sweep
	LinkCheckTimeoutSec int    `mapstructure:"LINKCHECK_TIMEOUT_SEC"`
	LinkCheckUserAgent  string `mapstructure:"LINKCHECK_USER_AGENT"`
	LinkCheckRulesFile  string `mapstructure:"LINKCHECK_RULES_FILE"`
	SweepDelayMS        int    `mapstructure:"SWEEP_DELAY_MS"`

	// Public suggestion submission limits (per client IP)
	SuggestionRatePerMinute int `mapstructure:"SUGGESTION_RATE_PER_MINUTE"`
	SuggestionRateBurst     int `mapstructure:"SUGGESTION_RATE_BURST"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7008")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "study_archive")
	viper.SetDefault("DB_SSL_MODE", "disable")

	// KV defaults: no path means the directory store is unavailable
	viper.SetDefault("KV_PATH", "")
	viper.SetDefault("KV_IN_MEMORY", false)
	viper.SetDefault("GROUPS_KEY", "groups")

	// Auth defaults
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("CRON_SECRET", "")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"})

	// Link check defaults
	viper.SetDefault("LINKCHECK_TIMEOUT_SEC", 10)
	viper.SetDefault("LINKCHECK_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	viper.SetDefault("LINKCHECK_RULES_FILE", "")
	viper.SetDefault("SWEEP_DELAY_MS", 500)

	viper.SetDefault("SUGGESTION_RATE_PER_MINUTE", 5)
	viper.SetDefault("SUGGESTION_RATE_BURST", 3)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if config.CronSecret == "" {
			return fmt.Errorf("CRON_SECRET must be set in production")
		}
	}

	if config.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}

	if config.GroupsKey == "" {
		return fmt.Errorf("groups key is required")
	}

	if config.SweepDelayMS < 0 {
		return fmt.Errorf("SWEEP_DELAY_MS must not be negative")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// KVConfigured reports whether a key-value backend has been configured
func (c *Config) KVConfigured() bool {
	return c.KVInMemory || c.KVPath != ""
}
