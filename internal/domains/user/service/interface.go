package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/user/model"
)

// AfterCreateHook runs inside the user-creation transaction, right after the
// insert. A hook error rolls the user back.
type AfterCreateHook interface {
	AfterUserCreated(ctx context.Context, tx pgx.Tx, u *model.User) error
}

// SessionIssuer is satisfied by *jwt.Manager.
type SessionIssuer interface {
	GenerateSessionToken(userID int64) (string, error)
}

type ServiceInterface interface {
	// Register validates the signup form, creates the user and returns a
	// session token. Invalid input returns validation.Errors.
	Register(ctx context.Context, form model.SignupForm) (*model.User, string, error)
	// Login checks credentials and returns a session token.
	Login(ctx context.Context, form model.LoginForm) (*model.User, string, error)

	// CreateUser creates an account without a session, for the management CLI.
	CreateUser(ctx context.Context, email, password string, staff bool) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
