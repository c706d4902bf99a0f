package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidUsername    = errors.New("username is empty or too long")
	ErrInvalidPassword    = errors.New("password is empty")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Score errors
	ErrInvalidScore = errors.New("score must be a positive integer")
)
