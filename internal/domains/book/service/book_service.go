package service

import (
	"context"
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authorsvc "library-catalog/internal/domains/author/service"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	friendsvc "library-catalog/internal/domains/friend/service"
	publishersvc "library-catalog/internal/domains/publisher/service"
	"library-catalog/internal/infrastructure/queue"
	"library-catalog/internal/shared/formset"
	"library-catalog/pkg/logger"
)

// ChoiceLoader supplies the reference options of the book form.
type ChoiceLoader interface {
	Choices(ctx context.Context) (*model.Choices, error)
}

type catalogChoices struct {
	authors    authorsvc.ServiceInterface
	publishers publishersvc.ServiceInterface
	friends    friendsvc.ServiceInterface
}

func NewChoiceLoader(a authorsvc.ServiceInterface, p publishersvc.ServiceInterface, f friendsvc.ServiceInterface) ChoiceLoader {
	return &catalogChoices{authors: a, publishers: p, friends: f}
}

func (c *catalogChoices) Choices(ctx context.Context) (*model.Choices, error) {
	out := &model.Choices{}

	authors, err := c.authors.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range authors {
		out.Authors = append(out.Authors, model.Choice{ID: a.ID, Label: a.FullName})
	}

	publishers, err := c.publishers.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range publishers {
		out.Publishers = append(out.Publishers, model.Choice{ID: p.ID, Label: p.Name})
	}

	friends, err := c.friends.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range friends {
		out.Friends = append(out.Friends, model.Choice{ID: f.ID, Label: f.Name})
	}
	return out, nil
}

type bookService struct {
	repo    repository.RepositoryInterface
	choices ChoiceLoader
	covers  CoverService
	jobs    queue.Enqueuer
}

func NewBookService(repo repository.RepositoryInterface, choices ChoiceLoader, covers CoverService, jobs queue.Enqueuer) ServiceInterface {
	return &bookService{
		repo:    repo,
		choices: choices,
		covers:  covers,
		jobs:    jobs,
	}
}

func (s *bookService) List(ctx context.Context) ([]*model.Book, error) {
	return s.repo.List(ctx)
}

func (s *bookService) ListDetailed(ctx context.Context) ([]*model.BookDetail, error) {
	return s.repo.ListDetailed(ctx)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) Titles(ctx context.Context) ([]string, error) {
	return s.repo.Titles(ctx)
}

func (s *bookService) Choices(ctx context.Context) (*model.Choices, error) {
	return s.choices.Choices(ctx)
}

// Increment và Decrement là read-modify-write, hai request đồng thời có thể
// làm mất một lần cập nhật.
func (s *bookService) Increment(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CopyCount == math.MaxInt16 {
		return b, nil
	}
	b.CopyCount++
	if err := s.repo.UpdateCopyCount(ctx, b.ID, b.CopyCount); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookService) Decrement(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CopyCount < 1 {
		b.CopyCount = 0
	} else {
		b.CopyCount--
	}
	if err := s.repo.UpdateCopyCount(ctx, b.ID, b.CopyCount); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookService) Create(ctx context.Context, form *model.BookForm) (*model.Book, error) {
	choices, err := s.choices.Choices(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate(form, choices); err != nil {
		return nil, err
	}

	b := form.ToBook()
	if err := s.storeCover(ctx, form, b); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.discardCover(ctx, b.Cover)
		return nil, referenceError(err)
	}

	s.afterCoverStored(ctx, b, form)
	logger.Info("book created", map[string]interface{}{"book_id": b.ID, "isbn": b.ISBN})
	return b, nil
}

func (s *bookService) Update(ctx context.Context, id int64, form *model.BookForm) (*model.Book, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	form.CurrentCover = current.Cover

	choices, err := s.choices.Choices(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate(form, choices); err != nil {
		return nil, err
	}

	b := form.ToBook()
	b.ID = current.ID
	b.Cover = current.Cover
	if form.CoverClear && form.CoverUpload == nil {
		b.Cover = ""
	}
	if err := s.storeCover(ctx, form, b); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		if b.Cover != current.Cover {
			s.discardCover(ctx, b.Cover)
		}
		return nil, referenceError(err)
	}

	if current.Cover != "" && current.Cover != b.Cover {
		s.enqueueDelete(ctx, current.Cover)
	}
	s.afterCoverStored(ctx, b, form)
	logger.Info("book updated", map[string]interface{}{"book_id": b.ID})
	return b, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	cover, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if cover != "" {
		s.enqueueDelete(ctx, cover)
	}
	logger.Info("book deleted", map[string]interface{}{"book_id": id})
	return nil
}

// validate runs the field rules and, when a file was attached, the cover
// checks. Errors from both are merged so the form shows them together.
func (s *bookService) validate(form *model.BookForm, choices *model.Choices) error {
	errs := validation.Errors{}
	if err := form.Validate(choices); err != nil {
		var verrs validation.Errors
		if !errors.As(err, &verrs) {
			return err
		}
		for k, v := range verrs {
			errs[k] = v
		}
	}

	form.CoverUpload = nil
	if form.Cover != nil {
		up, err := s.covers.Load(form.Cover)
		if err != nil {
			errs["cover"] = err
		} else {
			form.CoverUpload = up
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *bookService) storeCover(ctx context.Context, form *model.BookForm, b *model.Book) error {
	if form.CoverUpload == nil {
		return nil
	}
	key, err := s.covers.Store(ctx, form.CoverUpload)
	if err != nil {
		return err
	}
	b.Cover = key
	return nil
}

// discardCover xóa object vừa upload khi ghi DB thất bại
func (s *bookService) discardCover(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.covers.Delete(ctx, key); err != nil {
		logger.Warn("failed to discard uploaded cover", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *bookService) afterCoverStored(ctx context.Context, b *model.Book, form *model.BookForm) {
	if form.CoverUpload == nil || b.Cover == "" {
		return
	}
	if err := s.jobs.EnqueueProcessCover(ctx, b.ID, b.Cover); err != nil {
		logger.Warn("failed to enqueue cover processing", map[string]interface{}{"book_id": b.ID, "error": err.Error()})
	}
}

func (s *bookService) enqueueDelete(ctx context.Context, key string) {
	if err := s.jobs.EnqueueDeleteCover(ctx, key); err != nil {
		logger.Warn("failed to enqueue cover deletion", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// referenceError turns a vanished author/publisher/friend into a form error.
func referenceError(err error) error {
	if errors.Is(err, model.ErrInvalidReference) {
		return validation.Errors{formset.NonFieldKey: err}
	}
	return err
}
