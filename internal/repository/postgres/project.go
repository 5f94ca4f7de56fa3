package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"folio/internal/domain"
	"folio/internal/domain/models/portfolio"
	"folio/internal/domain/repositories"
	"folio/internal/repository/codec"
)

const projectColumns = `id, title, description, category, tags, status, content, cover_url, is_recent_work, created_at, updated_at`

// orderClauses maps sort keys to ORDER BY clauses. id breaks ties so paging
// over equal keys is deterministic.
var orderClauses = map[portfolio.SortKey]string{
	portfolio.SortCreatedDesc: "created_at DESC, id",
	portfolio.SortCreatedAsc:  "created_at ASC, id",
	portfolio.SortTitleAsc:    "title ASC, id",
	portfolio.SortTitleDesc:   "title DESC, id",
}

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new project. record.ID is set only once the row is stored.
func (r *PostgresProjectRepository) Create(ctx context.Context, record *portfolio.ProjectRecord) error {
	row, err := codec.Serialize(record)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	row.ID = uuid.NewString()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.tables.Projects, projectColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		row.ID,
		row.Title,
		row.Description,
		row.Category,
		row.Tags,
		row.Status,
		row.Content,
		row.CoverURL,
		row.IsRecentWork,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return translateError("create", row.ID, err)
	}

	record.ID = row.ID
	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*portfolio.ProjectRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	row, err := scanRow(executor.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError("get", id, err)
	}

	record := codec.Deserialize(row)
	if record.ContentParseFailed {
		r.logger.Warn("project content unreadable, serving without content",
			"id", record.ID,
			"error", record.ContentErr,
		)
	}
	return record, nil
}

// Query lists projects matching the equality filters in the requested order
func (r *PostgresProjectRepository) Query(ctx context.Context, q portfolio.ProjectQuery) ([]*portfolio.ProjectRecord, error) {
	var (
		where []string
		args  []any
	)
	if q.Status != "" {
		args = append(args, string(q.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.Category != "" && q.Category != portfolio.CategoryAll {
		args = append(args, string(q.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	order, ok := orderClauses[q.Sort.OrDefault()]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrValidation, q.Sort)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", projectColumns, r.tables.Projects)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY " + order)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, translateError("query", "", err)
	}
	defer rows.Close()

	var raws []*portfolio.RawRecord
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, translateError("scan", "", err)
		}
		raws = append(raws, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate", "", err)
	}

	return codec.DeserializeAll(r.logger, raws), nil
}

// Update overwrites the stored fields of a project. created_at is never
// changed.
func (r *PostgresProjectRepository) Update(ctx context.Context, record *portfolio.ProjectRecord) error {
	if _, err := uuid.Parse(record.ID); err != nil {
		return fmt.Errorf("project %s: %w", record.ID, domain.ErrNotFound)
	}
	row, err := codec.Serialize(record)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, category = $3, tags = $4, status = $5,
		    content = $6, cover_url = $7, is_recent_work = $8, updated_at = $9
		WHERE id = $10
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		row.Title,
		row.Description,
		row.Category,
		row.Tags,
		row.Status,
		row.Content,
		row.CoverURL,
		row.IsRecentWork,
		row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		return translateError("update", record.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", record.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project permanently
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return translateError("delete", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanRow(row pgx.Row) (*portfolio.RawRecord, error) {
	var raw portfolio.RawRecord
	err := row.Scan(
		&raw.ID,
		&raw.Title,
		&raw.Description,
		&raw.Category,
		&raw.Tags,
		&raw.Status,
		&raw.Content,
		&raw.CoverURL,
		&raw.IsRecentWork,
		&raw.CreatedAt,
		&raw.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &raw, nil
}
