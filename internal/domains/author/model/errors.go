package model

import "fmt"

// AuthorError định nghĩa base error cho author domain
type AuthorError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AuthorError) Unwrap() error {
	return e.Err
}

var ErrAuthorNotFound = &AuthorError{
	Code:    "AUTHOR_NOT_FOUND",
	Message: "Author not found",
}

// ErrInvalidBatch: ít nhất một form trong formset không hợp lệ
var ErrInvalidBatch = &AuthorError{
	Code:    "AUTHOR_BATCH_INVALID",
	Message: "One or more authors are invalid",
}
