// Package cache wraps a ProjectRepository with a Redis read-through cache for
// published listings. Every write bumps a generation counter, so stale
// listings are never read again and expire on their own.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"folio/internal/domain/models/portfolio"
	"folio/internal/domain/repositories"
	"folio/internal/repository/codec"
)

const (
	keyPrefix     = "folio:projects"
	generationKey = keyPrefix + ":gen"

	// DefaultTTL applies when the configured TTL is not positive.
	DefaultTTL = 5 * time.Minute
)

// ProjectRepository caches Query results for published records. Reads of
// drafts, single-record reads and all writes go straight to the store.
type ProjectRepository struct {
	next   repositories.ProjectRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository decorates next with a cache held in client.
func NewProjectRepository(next repositories.ProjectRepository, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *ProjectRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProjectRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *ProjectRepository) Create(ctx context.Context, record *portfolio.ProjectRecord) error {
	if err := r.next.Create(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*portfolio.ProjectRecord, error) {
	return r.next.GetByID(ctx, id)
}

// Query serves published listings from the cache when possible. Cache
// failures are logged and the store answers instead.
func (r *ProjectRepository) Query(ctx context.Context, q portfolio.ProjectQuery) ([]*portfolio.ProjectRecord, error) {
	if q.Status != portfolio.StatusPublished {
		return r.next.Query(ctx, q)
	}

	gen, err := r.generation(ctx)
	if err != nil {
		r.logger.Warn("project cache unavailable", "error", err)
		return r.next.Query(ctx, q)
	}
	key := listingKey(gen, q)

	if records, ok := r.load(ctx, key); ok {
		return records, nil
	}

	records, err := r.next.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, records)
	return records, nil
}

func (r *ProjectRepository) Update(ctx context.Context, record *portfolio.ProjectRecord) error {
	if err := r.next.Update(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *ProjectRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// invalidate moves listings to a new generation. When the counter cannot
// be incremented it is reset to the clock, which no earlier listing used.
func (r *ProjectRepository) invalidate(ctx context.Context) {
	err := r.client.Incr(ctx, generationKey).Err()
	if err == nil {
		return
	}

	gen := time.Now().UnixNano()
	if setErr := r.client.Set(ctx, generationKey, gen, 0).Err(); setErr != nil {
		r.logger.Error("project cache invalidation failed, published listings may be stale until they expire",
			"error", errors.Join(err, setErr),
			"ttl", r.ttl,
		)
		return
	}
	r.logger.Warn("project cache generation reset", "error", err, "generation", gen)
}

// load returns the cached listing under key. Entries are kept in storage
// form and read back through the codec like any stored row.
func (r *ProjectRepository) load(ctx context.Context, key string) ([]*portfolio.ProjectRecord, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("project cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var raws []*portfolio.RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		r.logger.Warn("project cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return codec.DeserializeAll(r.logger, raws), true
}

func (r *ProjectRepository) store(ctx context.Context, key string, records []*portfolio.ProjectRecord) {
	raws := make([]*portfolio.RawRecord, 0, len(records))
	for _, rec := range records {
		// Unreadable rows stay uncached so every read logs them.
		if rec.ContentParseFailed {
			return
		}
		raw, err := codec.Serialize(rec)
		if err != nil {
			r.logger.Warn("project cache encode failed", "id", rec.ID, "error", err)
			return
		}
		raws = append(raws, raw)
	}

	data, err := json.Marshal(raws)
	if err != nil {
		r.logger.Warn("project cache encode failed", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("project cache write failed", "key", key, "error", err)
	}
}

func listingKey(gen int64, q portfolio.ProjectQuery) string {
	return fmt.Sprintf("%s:v%d:%s:%s:%s:%d", keyPrefix, gen, q.Status, q.Category, q.Sort.OrDefault(), q.Limit)
}
