package services

import (
	"errors"
	"log"

	"storerate/internal/apperr"
	"storerate/internal/repositories"
)

// storageError passes application errors through and turns anything else
// into a generic StorageFailure. The detail is logged here because the
// client never sees it.
func storageError(op string, err error) error {
	if ae := apperr.As(err); ae != nil {
		return ae
	}
	log.Printf("%s: storage failure: %v", op, err)
	return apperr.Storage(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
