package handler

import (
	"net/http"

	"folio/internal/domain/services"
	"folio/internal/httputil"
	"folio/internal/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Catalog    *CatalogHandler
	Projects   *ProjectHandler
	Media      *MediaHandler
	Profile    *ProfileHandler
	Authorizer services.AdminAuthorizer
	Metrics    *middleware.Metrics
}

// NewRouter registers all routes (Go 1.22+ patterns). Admin routes sit
// behind RequireAdmin; every route is instrumented under its pattern.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(h.Authorizer)

	handle := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, h.Metrics.Instrument(pattern, fn))
	}
	handleAdmin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, h.Metrics.Instrument(pattern, admin(fn)))
	}

	// Health and metrics
	mux.HandleFunc("GET /health", HealthCheck)
	mux.Handle("GET /metrics", h.Metrics.Handler())

	// Public read side
	handle("GET /api/projects", h.Catalog.ListProjects)
	handle("GET /api/projects/grouped", h.Catalog.GroupedProjects)
	handle("GET /api/projects/{id}", h.Catalog.GetProject)
	handle("GET /api/projects/{id}/markdown", h.Catalog.ExportMarkdown)
	handle("GET /api/projects/{id}/next", h.Catalog.NextProject)
	handle("GET /api/recent-work", h.Catalog.RecentWork)

	// Signed-in user
	handle("GET /api/me", h.Profile.Me)

	// Back office
	handleAdmin("GET /api/admin/projects", h.Projects.ListProjects)
	handleAdmin("POST /api/admin/projects", h.Projects.CreateProject)
	handleAdmin("GET /api/admin/projects/{id}", h.Projects.GetProject)
	handleAdmin("PATCH /api/admin/projects/{id}", h.Projects.UpdateProject)
	handleAdmin("DELETE /api/admin/projects/{id}", h.Projects.DeleteProject)
	handleAdmin("POST /api/admin/projects/{id}/publish", h.Projects.PublishProject)
	handleAdmin("POST /api/admin/projects/{id}/unpublish", h.Projects.UnpublishProject)
	handleAdmin("POST /api/admin/projects/{id}/blocks", h.Projects.EditBlocks)
	handleAdmin("POST /api/admin/media", h.Media.Upload)

	return mux
}

// HealthCheck reports the process is serving
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
