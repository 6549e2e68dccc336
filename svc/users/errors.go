package users

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")
	ErrStore        = errors.New("users store failure")
)
