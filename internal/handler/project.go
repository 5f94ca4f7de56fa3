package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/domain/models/content"
	"folio/internal/domain/models/portfolio"
	"folio/internal/domain/services"
	"folio/internal/httputil"
	"folio/internal/service/editor"
)

// ProjectHandler handles the admin back office
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects lists projects in any status
// GET /api/admin/projects?status=&category=&sort=&limit=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	projects, err := h.projectService.ListProjects(r.Context(), portfolio.ProjectQuery{
		Status:   portfolio.Status(query.Get("status")),
		Category: portfolio.Category(query.Get("category")),
		Sort:     portfolio.SortKey(query.Get("sort")),
		Limit:    limit,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// CreateProject creates a new project
// POST /api/admin/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a project in any status
// GET /api/admin/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// updateProjectBody is the PATCH payload. cover_url distinguishes absent
// (keep) from null or "" (clear).
type updateProjectBody struct {
	Title        *string                `json:"title"`
	Description  *string                `json:"description"`
	Category     *portfolio.Category    `json:"category"`
	Tags         []string               `json:"tags"`
	Content      *content.Body          `json:"content"`
	CoverURL     httputil.Patch[string] `json:"cover_url"`
	IsRecentWork *bool                  `json:"is_recent_work"`
}

func (b *updateProjectBody) toRequest() *services.UpdateProjectRequest {
	return &services.UpdateProjectRequest{
		Title:        b.Title,
		Description:  b.Description,
		Category:     b.Category,
		Tags:         b.Tags,
		Content:      b.Content,
		CoverURL:     b.CoverURL.OrZero(),
		IsRecentWork: b.IsRecentWork,
	}
}

// UpdateProject merges changes into a project
// PATCH /api/admin/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var body updateProjectBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		handleBodyError(w, err)
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), r.PathValue("id"), body.toRequest())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// PublishProject makes a project public
// POST /api/admin/projects/{id}/publish
func (h *ProjectHandler) PublishProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.PublishProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UnpublishProject returns a project to draft
// POST /api/admin/projects/{id}/unpublish
func (h *ProjectHandler) UnpublishProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.UnpublishProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// editBlocksBody is a batch of block operations on one language variant
type editBlocksBody struct {
	Language string           `json:"language"`
	Ops      []editor.BlockOp `json:"ops"`
}

// EditBlocks applies block operations to a project's content
// POST /api/admin/projects/{id}/blocks
func (h *ProjectHandler) EditBlocks(w http.ResponseWriter, r *http.Request) {
	var body editBlocksBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		handleBodyError(w, err)
		return
	}

	project, err := h.projectService.EditBlocks(r.Context(), r.PathValue("id"), body.Language, body.Ops)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project permanently
// DELETE /api/admin/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
