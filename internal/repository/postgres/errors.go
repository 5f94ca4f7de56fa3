package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"folio/internal/domain"
)

const pgUniqueViolation = "23505"

// translateError maps driver errors onto domain errors. Anything it does not
// recognise is reported as a storage outage.
func translateError(op, id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("project %s already exists", id),
			ResourceType: "project",
			ResourceID:   id,
		}
	}
	return &domain.UpstreamError{Collaborator: "postgres", Op: op + " project", Err: err}
}
