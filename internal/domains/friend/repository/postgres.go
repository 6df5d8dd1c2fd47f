package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/friend/model"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
)

type RepositoryInterface interface {
	Create(ctx context.Context, f *model.Friend) error
	GetByID(ctx context.Context, id int64) (*model.Friend, error)
	List(ctx context.Context) ([]*model.Friend, error)
	// Delete cascades to books lent to this friend.
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

func (r *postgresRepository) Create(ctx context.Context, f *model.Friend) error {
	if err := r.pool.QueryRow(ctx, `INSERT INTO friends (name) VALUES ($1) RETURNING id`, f.Name).Scan(&f.ID); err != nil {
		return fmt.Errorf("insert friend: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Friend, error) {
	var f model.Friend
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM friends WHERE id = $1`, id).Scan(&f.ID, &f.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrFriendNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get friend by id: %w", err)
	}
	return &f, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Friend, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM friends ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var out []*model.Friend
	for rows.Next() {
		var f model.Friend
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM friends WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrFriendNotFound
	}
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
	return nil
}
