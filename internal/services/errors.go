package services

import "errors"

// Sentinel errors returned by services. Handlers map them to HTTP statuses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrReceiverNotFound   = errors.New("receiver not found")
	ErrTargetNotFound     = errors.New("guess target not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
)
