package handler

import (
	"net/http"

	"folio/internal/domain/services"
	"folio/internal/httputil"
)

// ProfileHandler describes the signed-in user
type ProfileHandler struct {
	authorizer services.AdminAuthorizer
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authorizer services.AdminAuthorizer) *ProfileHandler {
	return &ProfileHandler{authorizer: authorizer}
}

// Me returns the caller's profile and whether they may use the back office
// GET /api/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := httputil.GetClaims(r)
	if claims == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile := claims.Profile()
	profile.IsAdmin = h.authorizer.IsAdmin(profile.ID)
	httputil.RespondJSON(w, http.StatusOK, profile)
}
