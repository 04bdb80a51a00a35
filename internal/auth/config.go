package auth

import (
	"fmt"
	"time"

	"study-archive-backend/internal/config"
)

const (
	// DefaultIssuer is the iss claim of every token this service mints
	DefaultIssuer = "study-archive-backend"
	// DefaultTokenTTL is the lifetime of an admin token when none is requested
	DefaultTokenTTL = 24 * time.Hour
)

// AuthConfig holds all authentication configuration for the application
type AuthConfig struct {
	JWTSecret string
	// CronSecret guards the scheduled sweep trigger. Empty disables the check.
	CronSecret string
	Issuer     string
	TokenTTL   time.Duration
}

// NewAuthConfig derives the auth configuration from the application config
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		CronSecret: cfg.CronSecret,
		Issuer:     DefaultIssuer,
		TokenTTL:   DefaultTokenTTL,
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("token TTL cannot be negative")
	}
	return nil
}
