package rentora_errors

import "errors"

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrSelfMessage   = errors.New("you cannot send messages to yourself")
	ErrInactiveUser  = errors.New("account is not verified")
)
