package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thapelomagqazana/accounts-api/internal/core/domain"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
)

const defaultTokenTTL = 30 * time.Minute

// TokenService issues and verifies HMAC-signed JWTs.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

type accountClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewTokenService builds a TokenService. The secret must be non-empty and
// the algorithm must be one of the HMAC-SHA family (HS256, HS384, HS512);
// anything else is a construction error so a misconfigured process never
// signs a token.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token service: signing secret is required")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return nil, fmt.Errorf("token service: unsupported signing algorithm %q", algorithm)
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Issue signs a token carrying the subject id, the role, and an absolute
// expiry (issued_at + ttl encoded as a numeric timestamp).
func (s *TokenService) Issue(claims ports.TokenClaims) (string, error) {
	now := time.Now().UTC()
	t := jwt.NewWithClaims(s.method, accountClaims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return t.SignedString(s.secret)
}

// Verify parses and validates a token. Every rejection cause collapses to
// domain.ErrInvalidToken so callers cannot probe which check failed.
func (s *TokenService) Verify(token string) (ports.TokenClaims, error) {
	var claims accountClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	return ports.TokenClaims{Subject: claims.Subject, Role: claims.Role}, nil
}

// TTL exposes the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
