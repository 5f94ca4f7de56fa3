package repositories

import (
	"context"

	"folio/internal/domain/models/portfolio"
)

// ProjectRepository defines data access operations for portfolio projects.
// Records come back already deserialized; a record whose content could not
// be read is returned with ContentParseFailed set, never as an error.
type ProjectRepository interface {
	// Create stores a new record and assigns its ID
	Create(ctx context.Context, record *portfolio.ProjectRecord) error

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (*portfolio.ProjectRecord, error)

	// Query returns records matching the equality filters, in the requested order
	Query(ctx context.Context, q portfolio.ProjectQuery) ([]*portfolio.ProjectRecord, error)

	// Update overwrites a record's stored fields (last write wins)
	Update(ctx context.Context, record *portfolio.ProjectRecord) error

	// Delete removes a record permanently
	Delete(ctx context.Context, id string) error
}
