package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/publisher/model"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/logger"
)

// postgresRepository implements RepositoryInterface on pgxpool
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache, cacheTTL time.Duration) RepositoryInterface {
	return &postgresRepository{
		pool:     pool,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Publisher) error {
	err := r.pool.QueryRow(ctx, `INSERT INTO publishers (name) VALUES ($1) RETURNING id`, p.Name).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert publisher: %w", err)
	}
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Publisher, error) {
	var p model.Publisher
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM publishers WHERE id = $1`, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPublisherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get publisher by id: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Publisher, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM publishers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	defer rows.Close()

	var out []*model.Publisher
	for rows.Next() {
		var p model.Publisher
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan publisher: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListWithTitles(ctx context.Context) ([]*model.PublisherWithTitles, error) {
	if r.cache != nil {
		var cached []*model.PublisherWithTitles
		found, err := r.cache.Get(ctx, shared.CacheKeyPublisherTitles, &cached)
		if err != nil {
			logger.Warn("publisher cache read failed", map[string]interface{}{"error": err.Error()})
		} else if found {
			return cached, nil
		}
	}

	query := `
		SELECT p.id, p.name,
		       COALESCE(array_agg(b.title ORDER BY b.id) FILTER (WHERE b.id IS NOT NULL), '{}') AS titles
		FROM publishers p
		LEFT JOIN books b ON b.publisher_id = p.id
		GROUP BY p.id, p.name
		ORDER BY p.id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list publishers with titles: %w", err)
	}
	defer rows.Close()

	out := []*model.PublisherWithTitles{}
	for rows.Next() {
		var p model.PublisherWithTitles
		if err := rows.Scan(&p.ID, &p.Name, &p.Titles); err != nil {
			return nil, fmt.Errorf("scan publisher: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, shared.CacheKeyPublisherTitles, out, r.cacheTTL); err != nil {
			logger.Warn("publisher cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return out, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete publisher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPublisherNotFound
	}
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
	return nil
}
