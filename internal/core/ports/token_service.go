package ports

// TokenClaims is the data encoded inside a bearer token.
type TokenClaims struct {
	Subject string
	Role    string
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// Verify fails with domain.ErrInvalidToken for every rejection cause
// (bad signature, malformed structure, elapsed expiry) so callers cannot
// distinguish why a token was refused.
type TokenService interface {
	Issue(claims TokenClaims) (string, error)
	Verify(token string) (TokenClaims, error)
}
