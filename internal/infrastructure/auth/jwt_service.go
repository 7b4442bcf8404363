package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/football-dashboard/internal/domain/user"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

const defaultTokenTTL = 24 * time.Hour

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 session tokens.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewJWTService(secret, issuer string, ttl time.Duration, clock clockwork.Clock) (*JWTService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		clock:  clock,
	}, nil
}

func (s *JWTService) IssueAccessToken(_ context.Context, principal user.Principal) (usecase.AccessToken, error) {
	if principal.UserID == "" {
		return usecase.AccessToken{}, fmt.Errorf("principal user id is required")
	}

	now := s.clock.Now().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: principal.Email,
		Name:  principal.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return usecase.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}
	return usecase.AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *JWTService) VerifyAccessToken(_ context.Context, raw string) (user.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return user.Principal{}, fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)
		}
		return user.Principal{}, fmt.Errorf("%w: invalid token", usecase.ErrUnauthorized)
	}
	if parsed.Subject == "" {
		return user.Principal{}, fmt.Errorf("%w: token has no subject", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: parsed.Subject,
		Email:  parsed.Email,
		Name:   parsed.Name,
	}, nil
}
