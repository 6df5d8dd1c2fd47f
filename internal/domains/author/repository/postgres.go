package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const insertAuthor = `
	INSERT INTO authors (full_name, birth_year, country)
	VALUES ($1, $2, $3)
	RETURNING id
`

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) error {
	if err := r.pool.QueryRow(ctx, insertAuthor, a.FullName, a.BirthYear, a.Country).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, a *model.Author) error {
	if err := tx.QueryRow(ctx, insertAuthor, a.FullName, a.BirthYear, a.Country).Scan(&a.ID); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `SELECT id, full_name, birth_year, country FROM authors WHERE id = $1`

	var a model.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.FullName, &a.BirthYear, &a.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author by id: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Author, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, full_name, birth_year, country FROM authors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []*model.Author
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.FullName, &a.BirthYear, &a.Country); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, &a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	// books của author bị xóa theo cascade
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
	return nil
}
