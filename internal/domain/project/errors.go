package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrRecordNotFound indicates the photo record doesn't exist.
	ErrRecordNotFound = errors.New("photo record not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrInvalidAmount indicates the profit input didn't parse as a number.
	ErrInvalidAmount = errors.New("invalid profit amount")
	// ErrPhotoMissing indicates the blob behind a record is gone.
	ErrPhotoMissing = errors.New("photo bytes missing from blob store")
)
