package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/config"
	"asistencia/internal/domain"
	"asistencia/internal/service"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "asistencia-test",
	}
}

func TestSessionService_IssueAndValidate(t *testing.T) {
	svc := service.NewSessionService(sessionConfig())
	sheetID := uuid.New()

	tok, err := svc.Issue(sheetID)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.ExpiresAt, 5*time.Second)

	claims, err := svc.Validate(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, sheetID, claims.SheetID)
	assert.Equal(t, "asistencia-test", claims.Issuer)
}

func TestSessionService_RejectsWrongSecret(t *testing.T) {
	other := sessionConfig()
	other.Secret = "another-secret"
	tok, err := service.NewSessionService(other).Issue(uuid.New())
	require.NoError(t, err)

	_, err = service.NewSessionService(sessionConfig()).Validate(tok.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSessionService_RejectsExpiredToken(t *testing.T) {
	cfg := sessionConfig()
	cfg.Expiry = -time.Minute
	svc := service.NewSessionService(cfg)

	tok, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Validate(tok.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestSessionService_RejectsOtherAudience(t *testing.T) {
	cfg := sessionConfig()
	claims := &service.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Audience:  jwt.ClaimStrings{"access"},
		},
		SheetID: uuid.New(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = service.NewSessionService(cfg).Validate(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestSessionService_RejectsGarbage(t *testing.T) {
	_, err := service.NewSessionService(sessionConfig()).Validate("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
