package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/domain/models/portfolio"
	"folio/internal/domain/services"
	"folio/internal/httputil"
)

// CatalogHandler serves the public read side
type CatalogHandler struct {
	catalog services.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog services.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProjects lists published projects
// GET /api/projects?category=&q=&sort=&page_size=&cursor=&lang=
func (h *CatalogHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pageSize, err := httputil.QueryInt(r, "page_size", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.catalog.ListPublished(r.Context(), &services.ListPublishedRequest{
		Category: portfolio.Category(query.Get("category")),
		Search:   query.Get("q"),
		Sort:     portfolio.SortKey(query.Get("sort")),
		PageSize: pageSize,
		Cursor:   query.Get("cursor"),
		Language: requestLanguage(r),
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// GroupedProjects lists published projects by category
// GET /api/projects/grouped?sort=&lang=
func (h *CatalogHandler) GroupedProjects(w http.ResponseWriter, r *http.Request) {
	sort := portfolio.SortKey(r.URL.Query().Get("sort"))

	groups, err := h.catalog.GroupedPublished(r.Context(), sort, requestLanguage(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, groups)
}

// GetProject returns the project page
// GET /api/projects/{id}?lang=
func (h *CatalogHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.GetDetail(r.Context(), r.PathValue("id"), requestLanguage(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// ExportMarkdown returns the project as a Markdown document
// GET /api/projects/{id}/markdown?lang=
func (h *CatalogHandler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	md, err := h.catalog.ExportMarkdown(r.Context(), r.PathValue("id"), requestLanguage(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondText(w, http.StatusOK, "text/markdown; charset=utf-8", md)
}

// NextProject returns the following project in the same category
// GET /api/projects/{id}/next
// Responds 204 when the project is alone in its category.
func (h *CatalogHandler) NextProject(w http.ResponseWriter, r *http.Request) {
	next, err := h.catalog.NextProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	if next == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, next)
}

// RecentWork returns the photography wall
// GET /api/recent-work?lang=
func (h *CatalogHandler) RecentWork(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.RecentWork(r.Context(), requestLanguage(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}
