package repositories

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is wrapped when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenceMissing is wrapped when a foreign key points at no row.
	ErrReferenceMissing = errors.New("referenced record does not exist")
)
