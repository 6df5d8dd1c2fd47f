package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/repository"
	"library-catalog/pkg/database"
	"library-catalog/pkg/logger"
)

type userService struct {
	repo   repository.RepositoryInterface
	tx     database.Transactor
	tokens SessionIssuer
	hooks  []AfterCreateHook
	cost   int
}

func NewUserService(repo repository.RepositoryInterface, tx database.Transactor, tokens SessionIssuer, hooks ...AfterCreateHook) ServiceInterface {
	return &userService{
		repo:   repo,
		tx:     tx,
		tokens: tokens,
		hooks:  hooks,
		cost:   12,
	}
}

func (s *userService) Register(ctx context.Context, form model.SignupForm) (*model.User, string, error) {
	if err := form.Validate(); err != nil {
		return nil, "", err
	}

	u, err := s.CreateUser(ctx, form.Email, form.Password, false)
	if err != nil {
		if errors.Is(err, model.ErrEmailAlreadyExists) {
			return nil, "", validation.Errors{"email": err}
		}
		return nil, "", err
	}

	token, err := s.tokens.GenerateSessionToken(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	return u, token, nil
}

func (s *userService) CreateUser(ctx context.Context, email, password string, staff bool) (*model.User, error) {
	// bcrypt cost = 12
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		IsStaff:      staff,
		IsActive:     true,
	}

	// user và profile được tạo trong cùng một transaction
	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.repo.CreateWithTx(ctx, tx, u); err != nil {
			return err
		}
		for _, h := range s.hooks {
			if err := h.AfterUserCreated(ctx, tx, u); err != nil {
				return fmt.Errorf("after user created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("user created", map[string]interface{}{"user_id": u.ID, "is_staff": u.IsStaff})
	return u, nil
}

func (s *userService) Login(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
	if err := form.Validate(); err != nil {
		return nil, "", err
	}

	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(form.Email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, "", model.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(form.Password)); err != nil {
		return nil, "", model.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, "", model.ErrUserInactive
	}

	token, err := s.tokens.GenerateSessionToken(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	return u, token, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, email)
}
