package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/shared/formset"
)

// ServiceInterface defines business logic operations for authors.
type ServiceInterface interface {
	// Create validates and persists a single author.
	// Invalid input returns validation.Errors keyed by field.
	Create(ctx context.Context, form model.AuthorForm) (*model.Author, error)

	// CreateBatch validates every member of the set and, only if all pass,
	// persists them in one transaction. Otherwise ErrInvalidBatch is returned
	// and the per-member errors are left on the set.
	CreateBatch(ctx context.Context, set *formset.Set[model.AuthorForm]) ([]*model.Author, error)

	// InsertValidated persists already-validated forms inside tx.
	InsertValidated(ctx context.Context, tx pgx.Tx, forms []model.AuthorForm) ([]*model.Author, error)

	GetByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context) ([]*model.Author, error)
	Delete(ctx context.Context, id int64) error
}
