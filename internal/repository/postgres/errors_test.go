package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"folio/internal/domain"
)

func TestTranslateError(t *testing.T) {
	t.Run("no rows is not found", func(t *testing.T) {
		err := translateError("get", "p1", fmt.Errorf("scan: %w", pgx.ErrNoRows))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		err := translateError("create", "p1", &pgconn.PgError{Code: "23505"})

		var conflict *domain.ConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "p1", conflict.ResourceID)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("anything else is upstream", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := translateError("query", "", cause)

		assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
		assert.ErrorIs(t, err, cause)

		var up *domain.UpstreamError
		assert.ErrorAs(t, err, &up)
		assert.Equal(t, "query project", up.Op)
	})
}
