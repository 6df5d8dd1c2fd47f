package model

import "fmt"

// PublisherError định nghĩa base error cho publisher domain
type PublisherError struct {
	Code    string // Error code duy nhất (VD: "PUBLISHER_NOT_FOUND")
	Message string
	Err     error
}

func (e *PublisherError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *PublisherError) Unwrap() error {
	return e.Err
}

var ErrPublisherNotFound = &PublisherError{
	Code:    "PUBLISHER_NOT_FOUND",
	Message: "Publisher not found",
}
