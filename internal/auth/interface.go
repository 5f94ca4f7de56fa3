package auth

import (
	"folio/internal/domain"
	"folio/internal/domain/models"
)

// TokenVerifier defines the interface for bearer token verification.
// Middleware depends on this rather than on the JWKS details.
type TokenVerifier interface {
	// VerifyToken validates a JWT and returns its claims. Any invalid,
	// expired or wrongly signed token yields domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.IdentityClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}

// DisabledVerifier rejects every token. It stands in when no identity
// provider is configured, leaving only the public routes usable.
type DisabledVerifier struct{}

func (DisabledVerifier) VerifyToken(string) (*models.IdentityClaims, error) {
	return nil, domain.ErrUnauthorized
}

func (DisabledVerifier) Close() error { return nil }
