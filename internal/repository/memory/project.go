// Package memory is a process-local project store. It keeps records in
// storage form, so reads go through the same codec as the Postgres store.
// It backs local development without a database and the service tests.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"folio/internal/domain"
	"folio/internal/domain/models/portfolio"
	"folio/internal/domain/repositories"
	"folio/internal/repository/codec"
)

// ProjectRepository implements repositories.ProjectRepository in memory.
type ProjectRepository struct {
	mu     sync.RWMutex
	rows   map[string]*portfolio.RawRecord
	logger *slog.Logger
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository creates an empty store.
func NewProjectRepository(logger *slog.Logger) *ProjectRepository {
	return &ProjectRepository{
		rows:   make(map[string]*portfolio.RawRecord),
		logger: logger,
	}
}

// Seed inserts rows in storage form as-is, including legacy content shapes.
func (r *ProjectRepository) Seed(rows ...*portfolio.RawRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		cp := *row
		r.rows[row.ID] = &cp
	}
}

// Create stores a new record and assigns its ID
func (r *ProjectRepository) Create(ctx context.Context, record *portfolio.ProjectRecord) error {
	row, err := codec.Serialize(record)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	row.ID = uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[row.ID] = row
	record.ID = row.ID
	return nil
}

// GetByID retrieves a record by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*portfolio.ProjectRecord, error) {
	r.mu.RLock()
	row, ok := r.rows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return codec.Deserialize(row), nil
}

// Query returns records matching the equality filters in the requested order
func (r *ProjectRepository) Query(ctx context.Context, q portfolio.ProjectQuery) ([]*portfolio.ProjectRecord, error) {
	r.mu.RLock()
	rows := make([]*portfolio.RawRecord, 0, len(r.rows))
	for _, row := range r.rows {
		if q.Status != "" && row.Status != string(q.Status) {
			continue
		}
		if q.Category != "" && q.Category != portfolio.CategoryAll && row.Category != string(q.Category) {
			continue
		}
		rows = append(rows, row)
	}
	r.mu.RUnlock()

	// Map iteration is random; fix a base order so equal sort keys are stable.
	slices.SortFunc(rows, func(a, b *portfolio.RawRecord) int { return strings.Compare(a.ID, b.ID) })
	slices.SortStableFunc(rows, rowOrder(q.Sort.OrDefault()))

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	return codec.DeserializeAll(r.logger, rows), nil
}

// Update overwrites a record's stored fields
func (r *ProjectRepository) Update(ctx context.Context, record *portfolio.ProjectRecord) error {
	row, err := codec.Serialize(record)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[record.ID]
	if !ok {
		return fmt.Errorf("project %s: %w", record.ID, domain.ErrNotFound)
	}
	row.CreatedAt = existing.CreatedAt
	r.rows[record.ID] = row
	return nil
}

// Delete removes a record permanently
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

// rowOrder mirrors the ORDER BY clauses of the Postgres store.
func rowOrder(key portfolio.SortKey) func(a, b *portfolio.RawRecord) int {
	switch key {
	case portfolio.SortCreatedAsc:
		return func(a, b *portfolio.RawRecord) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case portfolio.SortTitleAsc:
		return func(a, b *portfolio.RawRecord) int { return strings.Compare(a.Title, b.Title) }
	case portfolio.SortTitleDesc:
		return func(a, b *portfolio.RawRecord) int { return strings.Compare(b.Title, a.Title) }
	default:
		return func(a, b *portfolio.RawRecord) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}
