package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range tool input.
	ErrValidation = errors.New("validation error")
	// ErrRetrieval marks an index or search failure; the retrieval
	// branch degrades to an empty result set.
	ErrRetrieval = errors.New("retrieval error")
	// ErrBackendUnavailable marks a reasoning/response backend timeout
	// or malformed output; it triggers a fallback, never a request
	// failure.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrConfiguration marks a missing corpus or factor table at
	// startup. Fatal; blocks readiness.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidInput marks a malformed request reaching the core.
	ErrInvalidInput = errors.New("invalid input")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
