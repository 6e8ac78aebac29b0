package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirasaad/currency-proxy/pkg/config"
	"github.com/amirasaad/currency-proxy/pkg/domain"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return New(
		config.AuthConfig{Username: "admin", PasswordHash: string(hash)},
		config.JwtConfig{Secret: "test-secret", Issuer: "currency-proxy", Expiry: time.Hour},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t, "s3cret")

	signed, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "currency-proxy", claims["iss"])
	assert.NotEmpty(t, claims["jti"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, "s3cret")

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newTestService(t, "s3cret")

	_, err := svc.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_DisabledWhenNoHashConfigured(t *testing.T) {
	svc := New(
		config.AuthConfig{Username: "admin"},
		config.JwtConfig{Secret: "test-secret", Expiry: time.Hour},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	_, err := svc.Login(context.Background(), "admin", "anything")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
