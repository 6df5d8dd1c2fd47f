package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-catalog/internal/shared/formset"
)

const MinPasswordLength = 8

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SignupForm - POST /accounts/signup/
type SignupForm struct {
	Email     string `json:"email"`
	Password  string `json:"password1"`
	Password2 string `json:"password2"`
}

func BindSignupForm(src formset.Source) SignupForm {
	return SignupForm{
		Email:     src.Value("email"),
		Password:  src.Value("password1"),
		Password2: src.Value("password2"),
	}
}

func (f *SignupForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Email, validation.Required, is.EmailFormat),
		validation.Field(&f.Password, validation.Required,
			validation.RuneLength(MinPasswordLength, 0).Error("This password is too short. It must contain at least 8 characters.")),
		validation.Field(&f.Password2, validation.Required,
			validation.In(f.Password).Error("You must type the same password each time.")),
	)
}

// LoginForm - POST /accounts/login/
type LoginForm struct {
	Email    string `json:"login"`
	Password string `json:"password"`
	Next     string `json:"next"`
}

func BindLoginForm(src formset.Source) LoginForm {
	return LoginForm{
		Email:    src.Value("login"),
		Password: src.Value("password"),
		Next:     src.Value("next"),
	}
}

func (f *LoginForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Email, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}
