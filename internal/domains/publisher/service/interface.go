package service

import (
	"context"

	"library-catalog/internal/domains/publisher/model"
)

type ServiceInterface interface {
	// Create validates and persists; invalid input returns validation.Errors.
	Create(ctx context.Context, form model.PublisherForm) (*model.Publisher, error)
	GetByID(ctx context.Context, id int64) (*model.Publisher, error)
	List(ctx context.Context) ([]*model.Publisher, error)
	ListWithTitles(ctx context.Context) ([]*model.PublisherWithTitles, error)
	Delete(ctx context.Context, id int64) error
}
