package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user/model"
	"library-catalog/pkg/database"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, u *model.User) error {
	args := m.Called(ctx, tx, u)
	if args.Error(0) == nil {
		u.ID = 11
	}
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) SetStaff(ctx context.Context, id int64, staff bool) error {
	return m.Called(ctx, id, staff).Error(0)
}

type fakeTx struct {
	committed bool
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn database.TxFunc) error {
	if err := fn(nil); err != nil {
		return err
	}
	f.committed = true
	return nil
}

type recordingHook struct {
	users []*model.User
	err   error
}

func (h *recordingHook) AfterUserCreated(_ context.Context, _ pgx.Tx, u *model.User) error {
	h.users = append(h.users, u)
	return h.err
}

type fakeTokens struct{}

func (fakeTokens) GenerateSessionToken(userID int64) (string, error) {
	return "token-for-" + strconv.FormatInt(userID, 10), nil
}

func newTestService(repo *mockRepo, tx *fakeTx, hooks ...AfterCreateHook) *userService {
	svc := NewUserService(repo, tx, fakeTokens{}, hooks...).(*userService)
	svc.cost = bcrypt.MinCost
	return svc
}

func signup(email string) model.SignupForm {
	return model.SignupForm{Email: email, Password: "correct horse", Password2: "correct horse"}
}

func TestRegister_RunsHookInSameTransaction(t *testing.T) {
	repo, tx, hook := new(mockRepo), &fakeTx{}, &recordingHook{}
	repo.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	u, token, err := newTestService(repo, tx, hook).Register(context.Background(), signup("reader@example.com"))

	require.NoError(t, err)
	assert.True(t, tx.committed)
	require.Len(t, hook.users, 1)
	assert.Equal(t, u.ID, hook.users[0].ID)
	assert.Equal(t, "token-for-11", token)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse")))
}

func TestRegister_HookFailureRollsBack(t *testing.T) {
	repo, tx := new(mockRepo), &fakeTx{}
	repo.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, _, err := newTestService(repo, tx, &recordingHook{err: errors.New("profile insert failed")}).
		Register(context.Background(), signup("reader@example.com"))

	require.Error(t, err)
	assert.False(t, tx.committed)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	repo := new(mockRepo)
	form := signup("reader@example.com")
	form.Password2 = "something else"

	_, _, err := newTestService(repo, &fakeTx{}).Register(context.Background(), form)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "password2")
	repo.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := new(mockRepo)
	repo.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrEmailAlreadyExists)

	_, _, err := newTestService(repo, &fakeTx{}).Register(context.Background(), signup("reader@example.com"))

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.ErrorIs(t, verrs["email"], model.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{ID: 5, Email: "reader@example.com", PasswordHash: string(hash), IsActive: true}

	repo := new(mockRepo)
	repo.On("FindByEmail", mock.Anything, "reader@example.com").Return(stored, nil)
	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, model.ErrUserNotFound)
	svc := newTestService(repo, &fakeTx{})

	u, token, err := svc.Login(context.Background(), model.LoginForm{Email: "reader@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), model.LoginForm{Email: "reader@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), model.LoginForm{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
