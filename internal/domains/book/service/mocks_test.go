package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/formset"
	"library-catalog/pkg/database"
)

type mockRepo struct {
	mock.Mock
	// invalidated đếm số lần InvalidateListings được gọi
	invalidated  int
	onInvalidate func()
}

func (m *mockRepo) Create(ctx context.Context, b *model.Book) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 42
	}
	return args.Error(0)
}

func (m *mockRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, b *model.Book) error {
	return m.Called(ctx, tx, b).Error(0)
}

func (m *mockRepo) InvalidateListings(ctx context.Context) {
	m.invalidated++
	if m.onInvalidate != nil {
		m.onInvalidate()
	}
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*model.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]*model.Book, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.Book), args.Error(1)
}

func (m *mockRepo) ListDetailed(ctx context.Context) ([]*model.BookDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*model.BookDetail), args.Error(1)
}

func (m *mockRepo) Titles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, b *model.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) UpdateCopyCount(ctx context.Context, id int64, count int16) error {
	return m.Called(ctx, id, count).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockRepo) CoverKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type staticChoices struct {
	choices *model.Choices
}

func (s staticChoices) Choices(context.Context) (*model.Choices, error) {
	return s.choices, nil
}

func defaultChoices() staticChoices {
	return staticChoices{choices: &model.Choices{
		Authors:    []model.Choice{{ID: 1, Label: "Leo Tolstoy"}},
		Publishers: []model.Choice{{ID: 2, Label: "Acme"}},
		Friends:    []model.Choice{{ID: 3, Label: "Masha"}},
	}}
}

type mockCovers struct {
	mock.Mock
}

func (m *mockCovers) Load(fh *multipart.FileHeader) (*model.CoverUpload, error) {
	args := m.Called(fh)
	if up, ok := args.Get(0).(*model.CoverUpload); ok {
		return up, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCovers) Store(ctx context.Context, up *model.CoverUpload) (string, error) {
	args := m.Called(ctx, up)
	return args.String(0), args.Error(1)
}

func (m *mockCovers) ProcessVariants(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCovers) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCovers) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	args := m.Called(ctx, grace)
	return args.Int(0), args.Error(1)
}

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) EnqueueProcessCover(ctx context.Context, bookID int64, key string) error {
	return m.Called(ctx, bookID, key).Error(0)
}

func (m *mockJobs) EnqueueDeleteCover(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockAuthors struct {
	mock.Mock
}

func (m *mockAuthors) Create(ctx context.Context, form authormodel.AuthorForm) (*authormodel.Author, error) {
	args := m.Called(ctx, form)
	return nil, args.Error(1)
}

func (m *mockAuthors) CreateBatch(ctx context.Context, set *formset.Set[authormodel.AuthorForm]) ([]*authormodel.Author, error) {
	args := m.Called(ctx, set)
	return nil, args.Error(1)
}

func (m *mockAuthors) InsertValidated(ctx context.Context, tx pgx.Tx, forms []authormodel.AuthorForm) ([]*authormodel.Author, error) {
	args := m.Called(ctx, tx, forms)
	out := make([]*authormodel.Author, len(forms))
	for i := range forms {
		a := forms[i].ToAuthor()
		out[i] = a
	}
	return out, args.Error(1)
}

func (m *mockAuthors) GetByID(ctx context.Context, id int64) (*authormodel.Author, error) {
	args := m.Called(ctx, id)
	return nil, args.Error(1)
}

func (m *mockAuthors) List(ctx context.Context) ([]*authormodel.Author, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *mockAuthors) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// fakeTx runs fn without a database; commit = fn returned nil.
type fakeTx struct {
	calls     int
	committed bool
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	f.calls++
	if err := fn(nil); err != nil {
		return err
	}
	f.committed = true
	return nil
}
