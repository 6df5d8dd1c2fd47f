package service

import (
	"context"

	"library-catalog/internal/domains/friend/model"
	"library-catalog/internal/domains/friend/repository"
)

type ServiceInterface interface {
	Create(ctx context.Context, form model.FriendForm) (*model.Friend, error)
	GetByID(ctx context.Context, id int64) (*model.Friend, error)
	List(ctx context.Context) ([]*model.Friend, error)
	Delete(ctx context.Context, id int64) error
}

type friendService struct {
	repo repository.RepositoryInterface
}

func NewFriendService(repo repository.RepositoryInterface) ServiceInterface {
	return &friendService{repo: repo}
}

func (s *friendService) Create(ctx context.Context, form model.FriendForm) (*model.Friend, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	f := &model.Friend{Name: form.Name}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *friendService) GetByID(ctx context.Context, id int64) (*model.Friend, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *friendService) List(ctx context.Context) ([]*model.Friend, error) {
	return s.repo.List(ctx)
}

func (s *friendService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
