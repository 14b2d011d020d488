package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 240 * time.Hour // 10 days

// Verification failure reasons. Verify returns exactly one of these; callers
// distinguish them for logging and metrics but must treat all as rejection.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// TokenService issues and verifies HS256-signed JWTs carrying the username
// as subject. The signing secret and TTL are injected at construction so
// they can be rotated and test-isolated.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a token service. A zero ttl falls back to the
// default; a negative ttl issues already-expired tokens, which tests use to
// exercise the expiry path.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token whose payload contains the subject and an
// absolute expiry at now + TTL.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and checks raw against the shared secret and the clock.
// On success the subject is returned unchanged; on any failure one of the
// sentinel reasons is returned and the subject is empty. Tokens signed with
// any algorithm other than HS256 are rejected as bad signature.
func (s *TokenService) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignatureInvalid
		default:
			return "", ErrTokenMalformed
		}
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}

	return claims.Subject, nil
}
