package model

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("A user is already registered with this e-mail address.")
	ErrInvalidCredentials = errors.New("The e-mail address and/or password you specified are not correct.")
	ErrUserInactive       = errors.New("This account is inactive.")
)
