package portfolio

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"folio/internal/config"
	"folio/internal/domain"
	contentModels "folio/internal/domain/models/content"
	models "folio/internal/domain/models/portfolio"
	"folio/internal/domain/repositories"
	"folio/internal/domain/services"
	"folio/internal/service/content"
)

// CatalogConfig holds read-side settings.
type CatalogConfig struct {
	DefaultLanguage string
	PageSize        int
}

// catalogService implements the CatalogService interface
type catalogService struct {
	projectRepo repositories.ProjectRepository
	renderer    *content.HTMLRenderer
	cfg         CatalogConfig
	logger      *slog.Logger
}

// NewCatalogService creates the public read-side service
func NewCatalogService(
	projectRepo repositories.ProjectRepository,
	cfg CatalogConfig,
	logger *slog.Logger,
) services.CatalogService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = config.DefaultPageSize
	}
	return &catalogService{
		projectRepo: projectRepo,
		renderer:    content.NewHTMLRenderer(),
		cfg:         cfg,
		logger:      logger,
	}
}

// ListPublished lists published projects, filtered, searched, sorted and paged
func (s *catalogService) ListPublished(ctx context.Context, req *services.ListPublishedRequest) (*services.SummaryPage, error) {
	if err := validateListRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	records, err := s.published(ctx, req.Category, req.Sort)
	if err != nil {
		return nil, err
	}

	// The store filters by equality only; text search runs here.
	records = SortRecords(SearchByText(records, req.Search), req.Sort)

	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = s.cfg.PageSize
	}
	page, err := Paginate(records, pageSize, req.Cursor)
	if err != nil {
		return nil, err
	}

	lang := s.lang(req.Language)
	out := &services.SummaryPage{Items: make([]services.ProjectSummary, 0, len(page.Items)), Next: page.Next}
	for _, r := range page.Items {
		out.Items = append(out.Items, summarize(r, lang))
	}
	return out, nil
}

// GroupedPublished lists published projects grouped by category
func (s *catalogService) GroupedPublished(ctx context.Context, sort models.SortKey, lang string) ([]services.SummaryGroup, error) {
	if sort != "" && !sort.Valid() {
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrValidation, sort)
	}

	records, err := s.published(ctx, "", sort)
	if err != nil {
		return nil, err
	}

	lang = s.lang(lang)
	groups := OrderedGroups(SortRecords(records, sort))
	out := make([]services.SummaryGroup, 0, len(groups))
	for _, g := range groups {
		sg := services.SummaryGroup{Category: g.Category, Projects: make([]services.ProjectSummary, 0, len(g.Projects))}
		for _, r := range g.Projects {
			sg.Projects = append(sg.Projects, summarize(r, lang))
		}
		out = append(out, sg)
	}
	return out, nil
}

// GetDetail builds the page for a published project
func (s *catalogService) GetDetail(ctx context.Context, id, lang string) (*services.ProjectDetail, error) {
	record, err := s.getPublished(ctx, id)
	if err != nil {
		return nil, err
	}

	lang = s.lang(lang)
	resolved, doc := resolve(record.Content, lang)

	detail := &services.ProjectDetail{
		Summary:  summarize(record, lang),
		Language: resolved,
		Document: doc,
		TextOnly: content.StripMediaNodes(doc),
		HTML:     s.renderer.Render(doc),
		Excerpt:  content.Excerpt(doc, config.ExcerptLength),
		Words:    content.WordCount(doc),
	}
	if record.Category == models.CategoryPhotography {
		detail.Gallery = content.CollectImages(doc)
	} else {
		detail.Gallery = content.CollectAllMedia(doc)
	}

	next, err := s.nextAfter(ctx, record)
	if err != nil {
		return nil, err
	}
	if next != nil {
		summary := summarize(next, lang)
		detail.Next = &summary
	}

	return detail, nil
}

// ExportMarkdown renders a published project's content as Markdown
func (s *catalogService) ExportMarkdown(ctx context.Context, id, lang string) (string, error) {
	record, err := s.getPublished(ctx, id)
	if err != nil {
		return "", err
	}

	_, doc := resolve(record.Content, s.lang(lang))
	body := content.RenderMarkdown(doc)

	header := "# " + record.Title + "\n\n"
	if record.Description != "" {
		header += record.Description + "\n\n"
	}
	if body == "" {
		return header, nil
	}
	return header + body + "\n", nil
}

// NextProject returns the published project after id in its category
func (s *catalogService) NextProject(ctx context.Context, id string) (*services.ProjectSummary, error) {
	record, err := s.getPublished(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := s.nextAfter(ctx, record)
	if err != nil || next == nil {
		return nil, err
	}
	summary := summarize(next, s.cfg.DefaultLanguage)
	return &summary, nil
}

// RecentWork lists the newest published photography flagged as recent work
func (s *catalogService) RecentWork(ctx context.Context, lang string) ([]services.ProjectSummary, error) {
	records, err := s.published(ctx, models.CategoryPhotography, models.SortCreatedDesc)
	if err != nil {
		return nil, err
	}

	lang = s.lang(lang)
	out := make([]services.ProjectSummary, 0, config.RecentWorkLimit)
	for _, r := range records {
		if !r.IsRecentWork {
			continue
		}
		out = append(out, summarize(r, lang))
		if len(out) == config.RecentWorkLimit {
			break
		}
	}
	return out, nil
}

func (s *catalogService) published(ctx context.Context, category models.Category, sort models.SortKey) ([]*models.ProjectRecord, error) {
	if category == models.CategoryAll {
		category = ""
	}
	records, err := s.projectRepo.Query(ctx, models.ProjectQuery{
		Status:   models.StatusPublished,
		Category: category,
		Sort:     sort.OrDefault(),
	})
	if err != nil {
		return nil, err
	}
	// Listings may come from the cache; never let a draft through.
	return FilterByStatus(records, models.StatusPublished), nil
}

// getPublished hides drafts behind not-found.
func (s *catalogService) getPublished(ctx context.Context, id string) (*models.ProjectRecord, error) {
	record, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsPublished() {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return record, nil
}

// nextAfter walks the category in creation order and wraps around. A
// project alone in its category has no next project.
func (s *catalogService) nextAfter(ctx context.Context, record *models.ProjectRecord) (*models.ProjectRecord, error) {
	siblings, err := s.published(ctx, record.Category, models.SortCreatedAsc)
	if err != nil {
		return nil, err
	}
	if len(siblings) == 0 {
		return nil, nil
	}

	idx := -1
	for i, r := range siblings {
		if r.ID == record.ID {
			idx = i
			break
		}
	}
	next := siblings[(idx+1)%len(siblings)]
	if next.ID == record.ID {
		return nil, nil
	}
	return next, nil
}

func (s *catalogService) lang(requested string) string {
	if requested != "" {
		return requested
	}
	return s.cfg.DefaultLanguage
}

// summarize builds a list card. An explicit cover wins; otherwise the first
// media item of the resolved document is used.
func summarize(r *models.ProjectRecord, lang string) services.ProjectSummary {
	summary := services.ProjectSummary{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Tags:         r.Tags,
		IsRecentWork: r.IsRecentWork,
		CreatedAt:    r.CreatedAt,
	}
	summary.CoverURL = CoverURL(r, lang)
	return summary
}

// CoverURL returns the record's cover image URL, or "" when it has none.
func CoverURL(r *models.ProjectRecord, lang string) string {
	if r.CoverURL != nil && *r.CoverURL != "" {
		return *r.CoverURL
	}
	_, doc := resolve(r.Content, lang)
	if ref := content.FindFirstMedia(doc); ref != nil {
		return ref.Src
	}
	return ""
}

// resolve picks the document for lang and reports which language it is.
// The language is empty for legacy single-document content.
func resolve(body *contentModels.Body, lang string) (string, *contentModels.Node) {
	doc := content.ResolveLocalized(body, lang)
	if doc == nil || body.Single != nil {
		return "", doc
	}
	for k, v := range body.Localized {
		if v == doc {
			return k, doc
		}
	}
	return "", doc
}

func validateListRequest(req *services.ListPublishedRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Category, validation.In(models.CategoryCoding, models.CategoryLocalization, models.CategoryPhotography, models.CategoryAll)),
		validation.Field(&req.Sort, validation.In(models.SortCreatedDesc, models.SortCreatedAsc, models.SortTitleAsc, models.SortTitleDesc)),
		validation.Field(&req.PageSize, validation.Min(0), validation.Max(config.MaxPageSize)),
		validation.Field(&req.Search, validation.Length(0, config.MaxTitleLength)),
	)
}
