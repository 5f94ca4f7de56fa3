package services

import "context"

// AdminAuthorizer decides who may use the back office. The portfolio has a
// single owner; everyone else only reads published content.
//
// Services and middleware call the authorizer before any write.
type AdminAuthorizer interface {
	// IsAdmin reports whether userID is the portfolio owner
	IsAdmin(userID string) bool

	// CanAdminister returns domain.ErrForbidden unless userID is the owner
	CanAdminister(ctx context.Context, userID string) error
}
