package services

import (
	"context"
	"time"

	"folio/internal/domain/models/content"
	"folio/internal/domain/models/portfolio"
	"folio/internal/service/editor"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     portfolio.Category `json:"category"`
	Tags         []string           `json:"tags"`
	Content      *content.Body      `json:"content"`
	CoverURL     *string            `json:"cover_url,omitempty"`
	IsRecentWork bool               `json:"is_recent_work"`
	Publish      bool               `json:"publish"` // false saves as draft
}

// UpdateProjectRequest is a merge update: nil fields are left unchanged.
// An empty CoverURL clears the explicit cover.
type UpdateProjectRequest struct {
	Title        *string             `json:"title,omitempty"`
	Description  *string             `json:"description,omitempty"`
	Category     *portfolio.Category `json:"category,omitempty"`
	Tags         []string            `json:"tags,omitempty"`
	Content      *content.Body       `json:"content,omitempty"`
	CoverURL     *string             `json:"cover_url,omitempty"`
	IsRecentWork *bool               `json:"is_recent_work,omitempty"`
}

// ProjectService is the admin back office for project records
type ProjectService interface {
	// CreateProject creates a record as draft, or published when requested
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*portfolio.ProjectRecord, error)

	// GetProject retrieves a record in any status
	GetProject(ctx context.Context, id string) (*portfolio.ProjectRecord, error)

	// ListProjects lists records in any status
	ListProjects(ctx context.Context, q portfolio.ProjectQuery) ([]*portfolio.ProjectRecord, error)

	// UpdateProject merges the request into the record
	UpdateProject(ctx context.Context, id string, req *UpdateProjectRequest) (*portfolio.ProjectRecord, error)

	// PublishProject makes a record public; fails when title or description is blank
	PublishProject(ctx context.Context, id string) (*portfolio.ProjectRecord, error)

	// UnpublishProject returns a record to draft
	UnpublishProject(ctx context.Context, id string) (*portfolio.ProjectRecord, error)

	// EditBlocks applies block operations to one language variant of the content
	EditBlocks(ctx context.Context, id, lang string, ops []editor.BlockOp) (*portfolio.ProjectRecord, error)

	// DeleteProject removes a record permanently
	DeleteProject(ctx context.Context, id string) error
}

// ListPublishedRequest filters and windows the public listing
type ListPublishedRequest struct {
	Category portfolio.Category
	Search   string
	Sort     portfolio.SortKey
	PageSize int
	Cursor   string
	Language string
}

// ProjectSummary is a list-view card
type ProjectSummary struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     portfolio.Category `json:"category"`
	Tags         []string           `json:"tags"`
	CoverURL     string             `json:"cover_url,omitempty"`
	IsRecentWork bool               `json:"is_recent_work"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SummaryPage is one page of a public listing
type SummaryPage struct {
	Items []ProjectSummary `json:"items"`
	Next  string           `json:"next,omitempty"`
}

// SummaryGroup is one category section of the grouped listing
type SummaryGroup struct {
	Category portfolio.Category `json:"category"`
	Projects []ProjectSummary   `json:"projects"`
}

// ProjectDetail is everything a project page needs
type ProjectDetail struct {
	Summary  ProjectSummary           `json:"project"`
	Language string                   `json:"language,omitempty"`
	Document *content.Node            `json:"document,omitempty"`
	TextOnly *content.Node            `json:"text_only,omitempty"`
	Gallery  []content.MediaReference `json:"gallery"`
	HTML     string                   `json:"html"`
	Excerpt  string                   `json:"excerpt"`
	Words    int                      `json:"word_count"`
	Next     *ProjectSummary          `json:"next,omitempty"`
}

// CatalogService is the public read side
type CatalogService interface {
	// ListPublished lists published records with filter, search, sort and paging
	ListPublished(ctx context.Context, req *ListPublishedRequest) (*SummaryPage, error)

	// GroupedPublished lists published records grouped by category
	GroupedPublished(ctx context.Context, sort portfolio.SortKey, lang string) ([]SummaryGroup, error)

	// GetDetail builds the project page for a published record
	GetDetail(ctx context.Context, id, lang string) (*ProjectDetail, error)

	// ExportMarkdown renders a published record's content as Markdown
	ExportMarkdown(ctx context.Context, id, lang string) (string, error)

	// NextProject returns the following published record in the same category, wrapping around
	NextProject(ctx context.Context, id string) (*ProjectSummary, error)

	// RecentWork lists the newest published Photography records flagged as recent work
	RecentWork(ctx context.Context, lang string) ([]ProjectSummary, error)
}
