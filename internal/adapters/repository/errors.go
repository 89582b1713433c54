package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrDuplicateUser  = errors.New("username already registered")
	ErrDuplicateEvent = errors.New("event already exists")
)
