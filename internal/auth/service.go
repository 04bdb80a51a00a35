package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	apperrors "study-archive-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role that may moderate the directory
const RoleAdmin = "admin"

// AuthService issues and validates admin tokens and checks the cron secret
type AuthService struct {
	config *AuthConfig
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	Username string `json:"username" example:"moderator"`
	Role     string `json:"role" example:"admin"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	if config.Issuer == "" {
		config.Issuer = DefaultIssuer
	}
	if config.TokenTTL == 0 {
		config.TokenTTL = DefaultTokenTTL
	}
	return &AuthService{config: config}, nil
}

// GenerateJWT creates an admin token for username. A zero ttl uses the configured default.
func (s *AuthService) GenerateJWT(username string, ttl time.Duration) (string, error) {
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	if ttl <= 0 {
		ttl = s.config.TokenTTL
	}

	now := time.Now()
	claims := &AuthClaims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(s.config.Issuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// CronSecretRequired reports whether the sweep trigger is guarded
func (s *AuthService) CronSecretRequired() bool {
	return s.config.CronSecret != ""
}

// VerifyCronSecret checks the bearer secret presented by the scheduler
func (s *AuthService) VerifyCronSecret(secret string) error {
	if !s.CronSecretRequired() {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.config.CronSecret)) != 1 {
		return apperrors.ErrInvalidCronSecret
	}
	return nil
}
