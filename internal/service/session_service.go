package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"asistencia/internal/config"
	"asistencia/internal/domain"
)

const sessionAudience = "sheet"

// SessionClaims are the JWT claims binding a token to one sheet.
type SessionClaims struct {
	jwt.RegisteredClaims
	SheetID uuid.UUID `json:"sheet_id"`
}

// SessionToken is a signed sheet session token.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService issues and validates sheet session tokens.
type SessionService interface {
	Issue(sheetID uuid.UUID) (*SessionToken, error)
	Validate(tokenString string) (*SessionClaims, error)
}

type sessionService struct {
	cfg config.SessionConfig
	now func() time.Time
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(cfg config.SessionConfig) SessionService {
	return &sessionService{cfg: cfg, now: time.Now}
}

func (s *sessionService) Issue(sheetID uuid.UUID) (*SessionToken, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.Expiry)

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sheetID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{sessionAudience},
		},
		SheetID: sheetID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing session token: %w", err)
	}
	return &SessionToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *sessionService) Validate(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	aud, _ := claims.GetAudience()
	found := false
	for _, a := range aud {
		if a == sessionAudience {
			found = true
			break
		}
	}
	if !found || claims.SheetID == uuid.Nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
