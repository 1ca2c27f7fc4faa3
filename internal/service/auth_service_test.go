package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/edurank/teacher-directory-api/internal/models"
	"github.com/edurank/teacher-directory-api/pkg/config"
	appErrors "github.com/edurank/teacher-directory-api/pkg/errors"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(config.AuthConfig{
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
	}, nil, nil)
}

func TestAuthServiceIssueAndValidateToken(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.IssueToken(models.TokenRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	cases := []models.TokenRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "someone", Password: "s3cret"},
	}
	for _, req := range cases {
		_, err := svc.IssueToken(req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	}
}

func TestAuthServiceRejectsMissingFields(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.IssueToken(models.TokenRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceUnconfiguredAdmin(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{AdminUser: "admin", JWTSecret: "x", TokenTTL: time.Hour}, nil, nil)

	_, err := svc.IssueToken(models.TokenRequest{Username: "admin", Password: "anything"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRejectsForgedToken(t *testing.T) {
	svc := newAuthService(t)
	other := NewAuthService(config.AuthConfig{
		AdminUser:         "admin",
		AdminPasswordHash: svc.cfg.AdminPasswordHash,
		JWTSecret:         "another-secret",
		TokenTTL:          time.Hour,
	}, nil, nil)

	resp, err := other.IssueToken(models.TokenRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	svc := newAuthService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	resp, err := svc.IssueToken(models.TokenRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}
