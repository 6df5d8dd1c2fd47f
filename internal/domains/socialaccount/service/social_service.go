package service

import (
	"context"
	"errors"

	"library-catalog/internal/domains/socialaccount/model"
	"library-catalog/internal/domains/socialaccount/repository"
	"library-catalog/pkg/logger"
)

type ServiceInterface interface {
	// MirrorProfile copies age and gender into the user's GitHub account
	// extra data. Users without a GitHub link are left alone.
	MirrorProfile(ctx context.Context, userID int64, age int, gender int16) error
	Link(ctx context.Context, userID int64, provider, uid string) (*model.SocialAccount, error)
}

type socialService struct {
	repo repository.RepositoryInterface
}

func NewSocialService(repo repository.RepositoryInterface) ServiceInterface {
	return &socialService{repo: repo}
}

func (s *socialService) MirrorProfile(ctx context.Context, userID int64, age int, gender int16) error {
	a, err := s.repo.GetByUserProvider(ctx, userID, model.ProviderGitHub)
	if err != nil {
		if errors.Is(err, model.ErrSocialAccountNotFound) {
			return nil
		}
		return err
	}

	if err := s.repo.MergeExtraData(ctx, a.ID, map[string]interface{}{"age": age, "gender": gender}); err != nil {
		return err
	}
	logger.Debug("profile mirrored to github account")
	return nil
}

func (s *socialService) Link(ctx context.Context, userID int64, provider, uid string) (*model.SocialAccount, error) {
	a := &model.SocialAccount{UserID: userID, Provider: provider, UID: uid}
	if err := s.repo.Link(ctx, a); err != nil {
		return nil, err
	}
	logger.Info("social account linked", map[string]interface{}{"user_id": userID, "provider": provider})
	return a, nil
}
