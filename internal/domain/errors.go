package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller does not own the requested entity.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyExists indicates a uniqueness conflict on write.
	ErrAlreadyExists = errors.New("already exists")
)
