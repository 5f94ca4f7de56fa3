package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"folio/internal/domain"
	"folio/internal/domain/services"
)

// OwnerAuthorizer implements AdminAuthorizer by comparing the caller with the
// configured owner ID. An empty owner ID locks the back office for everyone.
type OwnerAuthorizer struct {
	ownerID string
	logger  *slog.Logger
}

var _ services.AdminAuthorizer = (*OwnerAuthorizer)(nil)

// NewOwnerAuthorizer creates an authorizer for the given owner
func NewOwnerAuthorizer(ownerID string, logger *slog.Logger) *OwnerAuthorizer {
	if ownerID == "" {
		logger.Warn("no admin user configured, back office is locked")
	}
	return &OwnerAuthorizer{ownerID: ownerID, logger: logger}
}

func (a *OwnerAuthorizer) IsAdmin(userID string) bool {
	if a.ownerID == "" || userID == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(userID), []byte(a.ownerID)) == 1
}

// CanAdminister checks the caller is the portfolio owner
func (a *OwnerAuthorizer) CanAdminister(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if !a.IsAdmin(userID) {
		a.logger.Info("back office access denied", "user_id", userID)
		return fmt.Errorf("user %s is not the portfolio owner: %w", userID, domain.ErrForbidden)
	}
	return nil
}
