package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/user/model"
)

type RepositoryInterface interface {
	// CreateWithTx inserts u inside tx; a taken email returns ErrEmailAlreadyExists.
	CreateWithTx(ctx context.Context, tx pgx.Tx, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetStaff(ctx context.Context, id int64, staff bool) error
}
