package repository

import (
	"context"

	"library-catalog/internal/domains/publisher/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Publisher) error
	GetByID(ctx context.Context, id int64) (*model.Publisher, error)
	List(ctx context.Context) ([]*model.Publisher, error)

	// ListWithTitles returns every publisher with its book titles.
	// The result is cached until a book or publisher write invalidates it.
	ListWithTitles(ctx context.Context) ([]*model.PublisherWithTitles, error)

	// Delete cascades to the publisher's books.
	Delete(ctx context.Context, id int64) error
}
