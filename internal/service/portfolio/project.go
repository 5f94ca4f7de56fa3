package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"folio/internal/config"
	"folio/internal/domain"
	"folio/internal/domain/models/content"
	models "folio/internal/domain/models/portfolio"
	"folio/internal/domain/repositories"
	"folio/internal/domain/services"
	"folio/internal/service/editor"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	defaultLang string
	logger      *slog.Logger
}

// NewProjectService creates a new project service. defaultLang is the
// language variant block edits target when the caller names none.
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	defaultLang string,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		defaultLang: defaultLang,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.ProjectRecord, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now().UTC()
	record := &models.ProjectRecord{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Tags:         req.Tags,
		Status:       models.StatusDraft,
		Content:      req.Content,
		CoverURL:     nonEmpty(req.CoverURL),
		IsRecentWork: req.IsRecentWork,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	record.Normalize()

	if req.Publish {
		if err := record.Publish(now); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", record.ID,
		"title", record.Title,
		"status", record.Status,
	)

	return record, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.ProjectRecord, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// ListProjects retrieves projects in any status
func (s *projectService) ListProjects(ctx context.Context, q models.ProjectQuery) ([]*models.ProjectRecord, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if q.Category == models.CategoryAll {
		q.Category = ""
	}
	return s.projectRepo.Query(ctx, q)
}

// UpdateProject merges the request into an existing project
func (s *projectService) UpdateProject(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.ProjectRecord, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	record, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Category != nil {
		record.Category = *req.Category
	}
	if req.Tags != nil {
		record.Tags = req.Tags
	}
	if req.Content != nil {
		record.ReplaceContent(req.Content)
	}
	if req.CoverURL != nil {
		record.CoverURL = nonEmpty(req.CoverURL)
	}
	if req.IsRecentWork != nil {
		record.IsRecentWork = *req.IsRecentWork
	}
	record.Normalize()

	// A published record must keep satisfying the publish gate.
	if record.IsPublished() {
		if err := record.ValidateForPublish(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPublishValidationFailed, err)
		}
	}

	record.Touch(time.Now().UTC())
	if err := s.projectRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", record.ID,
		"title", record.Title,
	)

	return record, nil
}

// PublishProject transitions a project to published
func (s *projectService) PublishProject(ctx context.Context, id string) (*models.ProjectRecord, error) {
	record, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := record.Publish(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("project published", "id", id)
	return record, nil
}

// UnpublishProject transitions a project back to draft
func (s *projectService) UnpublishProject(ctx context.Context, id string) (*models.ProjectRecord, error) {
	record, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.Unpublish(time.Now().UTC())
	if err := s.projectRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("project unpublished", "id", id)
	return record, nil
}

// EditBlocks runs block operations against one language variant of the
// project content and saves the result. Nothing is saved if any operation
// fails.
func (s *projectService) EditBlocks(ctx context.Context, id, lang string, ops []editor.BlockOp) (*models.ProjectRecord, error) {
	if len(ops) == 0 || len(ops) > config.MaxBlockOps {
		return nil, fmt.Errorf("%w: between 1 and %d operations required", domain.ErrValidation, config.MaxBlockOps)
	}

	record, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.ContentParseFailed {
		return nil, fmt.Errorf("project %s has unreadable content, replace it before editing blocks: %w", id, domain.ErrConflict)
	}

	if lang == "" {
		lang = s.defaultLang
	}

	var doc *content.Node
	switch {
	case record.Content != nil && record.Content.Single != nil:
		doc = record.Content.Single
	case record.Content != nil:
		doc = record.Content.Localized[lang]
	}

	session := editor.NewSession(doc)
	if err := session.Apply(ops); err != nil {
		return nil, err
	}
	edited := session.Document()

	switch {
	case record.Content != nil && record.Content.Single != nil:
		record.Content = content.SingleBody(edited)
	default:
		docs := content.Localized{}
		if record.Content != nil {
			for k, v := range record.Content.Localized {
				docs[k] = v
			}
		}
		docs[lang] = edited
		record.Content = content.LocalizedBody(docs)
	}

	record.Touch(time.Now().UTC())
	if err := s.projectRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("project blocks edited",
		"id", id,
		"lang", lang,
		"ops", len(ops),
		"blocks", session.Len(),
	)

	return record, nil
}

// DeleteProject removes a project permanently
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	// Verify project exists first (provides better error message)
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}

func validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Length(0, config.MaxTitleLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Category, validation.Required, validation.By(validCategory)),
		validation.Field(&req.Tags,
			validation.Length(0, config.MaxTags),
			validation.Each(validation.Length(0, config.MaxTagLength)),
		),
		validation.Field(&req.Content, validation.By(validBody)),
	)
}

func validateUpdateRequest(req *services.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.NilOrNotEmpty.Error("cannot be empty; omit to keep"), validation.Length(0, config.MaxTitleLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Category, validation.By(validCategory)),
		validation.Field(&req.Tags,
			validation.Length(0, config.MaxTags),
			validation.Each(validation.Length(0, config.MaxTagLength)),
		),
		validation.Field(&req.Content, validation.By(validBody)),
	)
}

func validCategory(value interface{}) error {
	var c models.Category
	switch v := value.(type) {
	case models.Category:
		c = v
	case *models.Category:
		if v == nil {
			return nil
		}
		c = *v
	}
	if !c.Valid() {
		return fmt.Errorf("must be one of %v", models.Categories)
	}
	return nil
}

// validBody checks documents written through the API. Stored documents are
// read leniently, but new writes must be well-formed.
func validBody(value interface{}) error {
	body, _ := value.(*content.Body)
	if body == nil {
		return nil
	}
	if body.Single != nil {
		return body.Single.Validate()
	}
	for lang, doc := range body.Localized {
		if doc == nil {
			continue
		}
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("%s: %w", lang, err)
		}
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
