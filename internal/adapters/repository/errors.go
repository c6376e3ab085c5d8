package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrNotFound        = errors.New("session not found")
	ErrAlreadyExists   = errors.New("session already exists")
	ErrTooManySessions = errors.New("too many sessions")
)
