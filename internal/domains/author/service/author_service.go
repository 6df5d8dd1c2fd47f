package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/internal/shared/formset"
	"library-catalog/pkg/database"
	"library-catalog/pkg/logger"
)

type authorService struct {
	repo repository.RepositoryInterface
	tx   database.Transactor
}

func NewAuthorService(repo repository.RepositoryInterface, tx database.Transactor) ServiceInterface {
	return &authorService{
		repo: repo,
		tx:   tx,
	}
}

func (s *authorService) Create(ctx context.Context, form model.AuthorForm) (*model.Author, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	a := form.ToAuthor()
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) CreateBatch(ctx context.Context, set *formset.Set[model.AuthorForm]) ([]*model.Author, error) {
	if !set.Validate((*model.AuthorForm).Validate) {
		return nil, model.ErrInvalidBatch
	}

	authors, err := database.WithTransactionResult(ctx, s.tx, func(tx pgx.Tx) ([]*model.Author, error) {
		return s.InsertValidated(ctx, tx, set.Forms())
	})
	if err != nil {
		return nil, err
	}

	logger.Info("authors created", map[string]interface{}{"count": len(authors)})
	return authors, nil
}

func (s *authorService) InsertValidated(ctx context.Context, tx pgx.Tx, forms []model.AuthorForm) ([]*model.Author, error) {
	authors := make([]*model.Author, 0, len(forms))
	for _, f := range forms {
		a := f.ToAuthor()
		if err := s.repo.CreateWithTx(ctx, tx, a); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]*model.Author, error) {
	return s.repo.List(ctx)
}

func (s *authorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("author deleted", map[string]interface{}{"author_id": id})
	return nil
}
