package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/currency-proxy/pkg/config"
	"github.com/amirasaad/currency-proxy/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service validates the configured admin credentials and mints JWTs for
// the protected exchange routes.
type Service struct {
	authCfg config.AuthConfig
	jwtCfg  config.JwtConfig
	logger  *slog.Logger
}

// New creates an auth service.
func New(authCfg config.AuthConfig, jwtCfg config.JwtConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		authCfg: authCfg,
		jwtCfg:  jwtCfg,
		logger:  logger,
	}
}

// Login checks the credentials and returns a signed token on success.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != s.authCfg.Username || s.authCfg.PasswordHash == "" {
		s.logger.Warn("Login attempt with unknown username", "username", username)
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.authCfg.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login attempt with wrong password", "username", username)
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": "admin",
		"jti":  uuid.NewString(),
		"iss":  s.jwtCfg.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.jwtCfg.Expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		s.logger.Error("Failed to sign token", "error", err)
		return "", err
	}

	s.logger.Info("User logged in", "username", username)
	return signed, nil
}
