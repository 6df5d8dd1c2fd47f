package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/profile/model"
)

type RepositoryInterface interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, p *model.UserProfile) error
	// GetByUserID returns ErrProfileNotFound if the user has none.
	GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error)
	Update(ctx context.Context, p *model.UserProfile) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, p *model.UserProfile) error {
	query := `INSERT INTO user_profiles (user_id, age, gender) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.QueryRow(ctx, query, p.UserID, p.Age, p.Gender).Scan(&p.ID); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, age, gender FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&p.ID, &p.UserID, &p.Age, &p.Gender)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.UserProfile) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE user_profiles SET age = $2, gender = $3 WHERE id = $1`,
		p.ID, p.Age, p.Gender,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}
