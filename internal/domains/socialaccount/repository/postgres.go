package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/socialaccount/model"
)

type RepositoryInterface interface {
	// GetByUserProvider returns the first account of userID at provider.
	GetByUserProvider(ctx context.Context, userID int64, provider string) (*model.SocialAccount, error)
	// MergeExtraData sets the given keys, leaving other keys untouched.
	MergeExtraData(ctx context.Context, id int64, patch map[string]interface{}) error
	// Link creates the account, or moves an existing (provider, uid) to a.UserID.
	Link(ctx context.Context, a *model.SocialAccount) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByUserProvider(ctx context.Context, userID int64, provider string) (*model.SocialAccount, error) {
	query := `
		SELECT id, user_id, provider, uid, extra_data
		FROM social_accounts
		WHERE user_id = $1 AND provider = $2
		ORDER BY id
		LIMIT 1
	`
	var a model.SocialAccount
	err := r.pool.QueryRow(ctx, query, userID, provider).Scan(&a.ID, &a.UserID, &a.Provider, &a.UID, &a.ExtraData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSocialAccountNotFound
		}
		return nil, fmt.Errorf("get social account: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) MergeExtraData(ctx context.Context, id int64, patch map[string]interface{}) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE social_accounts SET extra_data = extra_data || $2::jsonb WHERE id = $1`,
		id, patch,
	)
	if err != nil {
		return fmt.Errorf("merge extra_data: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSocialAccountNotFound
	}
	return nil
}

func (r *postgresRepository) Link(ctx context.Context, a *model.SocialAccount) error {
	if a.ExtraData == nil {
		a.ExtraData = map[string]interface{}{}
	}
	query := `
		INSERT INTO social_accounts (user_id, provider, uid, extra_data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, uid) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, extra_data
	`
	if err := r.pool.QueryRow(ctx, query, a.UserID, a.Provider, a.UID, a.ExtraData).Scan(&a.ID, &a.ExtraData); err != nil {
		return fmt.Errorf("link social account: %w", err)
	}
	return nil
}
