package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/formset"
)

const MaxNameLength = 32

// Friend is someone a book can be lent to.
type Friend struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type FriendForm struct {
	Name string `json:"name"`
}

func BindForm(src formset.Source) FriendForm {
	return FriendForm{Name: src.Value("name")}
}

func (f FriendForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required,
			validation.RuneLength(0, MaxNameLength).Error(fmt.Sprintf("Ensure this value has at most %d characters.", MaxNameLength)),
		),
	)
}

type FriendError struct {
	Code    string
	Message string
}

func (e *FriendError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

var ErrFriendNotFound = &FriendError{
	Code:    "FRIEND_NOT_FOUND",
	Message: "Friend not found",
}
