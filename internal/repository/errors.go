package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity or blob doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrWriteFailed is returned when durable storage rejects a write
	ErrWriteFailed = errors.New("storage write failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
