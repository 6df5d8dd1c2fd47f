package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/profile/model"
	"library-catalog/internal/domains/profile/repository"
	usermodel "library-catalog/internal/domains/user/model"
	"library-catalog/pkg/logger"
)

// Mirror receives the saved age and gender; *socialaccount service satisfies it.
type Mirror interface {
	MirrorProfile(ctx context.Context, userID int64, age int, gender int16) error
}

type ServiceInterface interface {
	// AfterUserCreated provisions the profile of a new user (age 0, gender
	// unspecified) inside the user's creation transaction.
	AfterUserCreated(ctx context.Context, tx pgx.Tx, u *usermodel.User) error

	// GetForUser returns the profile owned by userID.
	GetForUser(ctx context.Context, userID int64) (*model.UserProfile, error)

	// Update validates and saves the profile of userID, then mirrors it to
	// the linked GitHub account. Mirroring failures are only logged.
	Update(ctx context.Context, userID int64, form model.ProfileForm) (*model.UserProfile, error)
}

type profileService struct {
	repo   repository.RepositoryInterface
	mirror Mirror
}

func NewProfileService(repo repository.RepositoryInterface, mirror Mirror) ServiceInterface {
	return &profileService{
		repo:   repo,
		mirror: mirror,
	}
}

func (s *profileService) AfterUserCreated(ctx context.Context, tx pgx.Tx, u *usermodel.User) error {
	p := &model.UserProfile{UserID: u.ID, Age: 0, Gender: model.GenderUnspecified}
	return s.repo.CreateWithTx(ctx, tx, p)
}

func (s *profileService) GetForUser(ctx context.Context, userID int64) (*model.UserProfile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *profileService) Update(ctx context.Context, userID int64, form model.ProfileForm) (*model.UserProfile, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	form.Apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if s.mirror != nil {
		if err := s.mirror.MirrorProfile(ctx, userID, p.Age, p.Gender); err != nil {
			logger.Warn("failed to mirror profile to social account", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return p, nil
}
