package service

import (
	"context"

	"library-catalog/internal/domains/publisher/model"
	"library-catalog/internal/domains/publisher/repository"
	"library-catalog/pkg/logger"
)

type publisherService struct {
	repo repository.RepositoryInterface
}

func NewPublisherService(repo repository.RepositoryInterface) ServiceInterface {
	return &publisherService{repo: repo}
}

func (s *publisherService) Create(ctx context.Context, form model.PublisherForm) (*model.Publisher, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	p := &model.Publisher{Name: form.Name}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *publisherService) GetByID(ctx context.Context, id int64) (*model.Publisher, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *publisherService) List(ctx context.Context) ([]*model.Publisher, error) {
	return s.repo.List(ctx)
}

func (s *publisherService) ListWithTitles(ctx context.Context) ([]*model.PublisherWithTitles, error) {
	return s.repo.ListWithTitles(ctx)
}

func (s *publisherService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("publisher deleted", map[string]interface{}{"publisher_id": id})
	return nil
}
