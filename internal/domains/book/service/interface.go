package service

import (
	"context"
	"io"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/formset"
)

// ServiceInterface defines business logic operations for books.
type ServiceInterface interface {
	List(ctx context.Context) ([]*model.Book, error)
	ListDetailed(ctx context.Context) ([]*model.BookDetail, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	// Titles is what the plain-text dump prints, one per book.
	Titles(ctx context.Context) ([]string, error)

	// Choices loads the authors, publishers and friends a form can reference.
	Choices(ctx context.Context) (*model.Choices, error)

	// Increment adds one copy. Missing books return ErrBookNotFound.
	Increment(ctx context.Context, id int64) (*model.Book, error)
	// Decrement removes one copy, never going below zero.
	Decrement(ctx context.Context, id int64) (*model.Book, error)

	// Create validates form and persists the book. Invalid input returns
	// validation.Errors keyed by field (cover problems under "cover").
	Create(ctx context.Context, form *model.BookForm) (*model.Book, error)
	Update(ctx context.Context, id int64, form *model.BookForm) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

// BulkServiceInterface handles batch book creation.
type BulkServiceInterface interface {
	// CreateAuthorsAndBooks validates both sets and persists authors then
	// books in one transaction, or nothing. ErrInvalidBatch leaves member
	// errors on the sets.
	CreateAuthorsAndBooks(ctx context.Context, authors *formset.Set[authormodel.AuthorForm], books *formset.Set[model.BookForm]) (*BulkResult, error)

	// ImportXLSX turns every data row of the first sheet into a member of a
	// "books" set and commits it like CreateAuthorsAndBooks does.
	ImportXLSX(ctx context.Context, r io.Reader) (*formset.Set[model.BookForm], error)

	// ExportXLSX writes every book in the import column layout.
	ExportXLSX(ctx context.Context) ([]byte, error)
}

type BulkResult struct {
	Authors int
	Books   int
}
