package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/author/model"
)

// RepositoryInterface defines data access for authors.
type RepositoryInterface interface {
	// Create inserts an author and fills in its ID.
	Create(ctx context.Context, a *model.Author) error
	// CreateWithTx is Create inside a caller-owned transaction (batch commits).
	CreateWithTx(ctx context.Context, tx pgx.Tx, a *model.Author) error

	// GetByID returns ErrAuthorNotFound if not exists
	GetByID(ctx context.Context, id int64) (*model.Author, error)
	// List returns every author ordered by id.
	List(ctx context.Context) ([]*model.Author, error)

	// Delete removes the author; the schema cascades to their books.
	Delete(ctx context.Context, id int64) error
}
