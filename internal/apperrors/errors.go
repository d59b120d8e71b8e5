package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that a write raced with another writer and must be retried.
var ErrConflict = errors.New("conflicting concurrent modification")

// ErrInternal indicates an unexpected internal failure (I/O, corrupt document).
var ErrInternal = errors.New("internal error")

// VersionConflictError reports an optimistic save that supplied a stale
// document version. It is the only recoverable failure in the core: the caller
// must reload the document at ServerVersion and retry the mutation.
type VersionConflictError struct {
	ClientVersion int
	ServerVersion int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict: client=%d, server=%d", e.ClientVersion, e.ServerVersion)
}

// Unwrap lets errors.Is(err, ErrConflict) match a VersionConflictError.
func (e *VersionConflictError) Unwrap() error {
	return ErrConflict
}
