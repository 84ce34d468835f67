// Package auth issues and verifies session tokens and guards routes that need them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/justsurfingit/jobportal/internal/apperrors"
)

const (
	// CookieName is the cookie that carries the session token.
	CookieName = "token"
	DefaultTTL = 10 * time.Hour
)

// Registered claims added on issue and removed again on verify.
var reservedClaims = []string{"iat", "exp", "jti"}

// Registered claims a caller may not supply; the parser would act on them.
var registeredClaims = []string{"iat", "exp", "nbf", "jti", "aud", "iss", "sub"}

var errRevoked = errors.New("token has been revoked")

// Identity is the decoded session payload.
type Identity struct {
	Email string
	// Payload is exactly what was passed to Issue.
	Payload map[string]any
}

// Denylist records revoked token ids until they would have expired anyway.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type TokenService struct {
	secret   []byte
	ttl      time.Duration
	clock    clockwork.Clock
	denylist Denylist
}

// NewTokenService builds the HS256 token service. A nil denylist makes Revoke a no-op.
func NewTokenService(secret string, ttl time.Duration, clock clockwork.Clock, denylist Denylist) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		clock:    clock,
		denylist: denylist,
	}
}

// TTL is the lifetime embedded in issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs the identity payload. It needs a non-empty string email and
// must not carry registered JWT claims.
func (s *TokenService) Issue(payload map[string]any) (string, error) {
	email, ok := payload["email"].(string)
	if !ok || email == "" {
		return "", apperrors.Validation("identity payload requires an email", nil)
	}
	for _, k := range registeredClaims {
		if _, ok := payload[k]; ok {
			return "", apperrors.Validation(fmt.Sprintf("identity payload must not set %q", k), nil)
		}
	}

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	now := s.clock.Now()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(s.ttl))
	claims["jti"] = uuid.NewString()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return signed, nil
}

// Verify decodes a token. Every failure other than an empty token collapses to InvalidToken.
func (s *TokenService) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated()
	}

	claims, err := s.parse(token)
	if err != nil {
		return nil, apperrors.InvalidToken(err)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, apperrors.InvalidToken(errors.New("token has no email claim"))
	}

	if s.denylist != nil {
		jti, _ := claims["jti"].(string)
		revoked, err := s.denylist.IsRevoked(ctx, jti)
		if err != nil {
			return nil, apperrors.StoreUnavailable(fmt.Errorf("check revocation: %w", err))
		}
		if revoked {
			return nil, apperrors.InvalidToken(errRevoked)
		}
	}

	payload := make(map[string]any, len(claims))
	for k, v := range claims {
		payload[k] = v
	}
	for _, k := range reservedClaims {
		delete(payload, k)
	}
	return &Identity{Email: email, Payload: payload}, nil
}

// Revoke denylists a still-valid token for the rest of its lifetime.
// Without a denylist, logout only clears the cookie and the token stays usable until it expires.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}

	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	jti, _ := claims["jti"].(string)
	exp, err := claims.GetExpirationTime()
	if jti == "" || err != nil || exp == nil {
		return nil
	}

	remaining := exp.Sub(s.clock.Now())
	if remaining <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, jti, remaining); err != nil {
		return apperrors.StoreUnavailable(fmt.Errorf("revoke token: %w", err))
	}
	return nil
}

func (s *TokenService) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}
