package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface - data access cho books. Mọi thao tác ghi đều xóa cache
// danh sách publisher.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) error
	// CreateWithTx leaves the listing cache alone; call InvalidateListings
	// once the transaction has committed.
	CreateWithTx(ctx context.Context, tx pgx.Tx, b *model.Book) error
	// InvalidateListings drops cached listings that include book titles
	InvalidateListings(ctx context.Context)

	// GetByID returns ErrBookNotFound if not exists
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	// List returns all books ordered by id
	List(ctx context.Context) ([]*model.Book, error)
	// ListDetailed joins author, publisher and friend names
	ListDetailed(ctx context.Context) ([]*model.BookDetail, error)
	// Titles returns every title ordered by id
	Titles(ctx context.Context) ([]string, error)

	// Update writes every editable column of b
	Update(ctx context.Context, b *model.Book) error
	// UpdateCopyCount writes only copy_count
	UpdateCopyCount(ctx context.Context, id int64, count int16) error

	// Delete removes the book and returns its cover key ("" if none)
	Delete(ctx context.Context, id int64) (string, error)

	// CoverKeys returns every non-empty cover key
	CoverKeys(ctx context.Context) ([]string, error)
}
