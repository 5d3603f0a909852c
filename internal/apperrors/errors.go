package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and handlers. Handlers translate
// these into HTTP status codes; repositories wrap store errors into them.
var (
	// ErrValidation marks malformed input (blank comment, self-follow, bad kind).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing actor, target, comment or notification.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden marks an authenticated actor without rights on the resource.
	// Distinct from ErrNotFound: the resource exists.
	ErrForbidden = errors.New("forbidden")

	// ErrConflictResolved marks a concurrent duplicate create that collapsed
	// into the winner's outcome. Internal only; the service layer absorbs it
	// and callers observe a normal success.
	ErrConflictResolved = errors.New("conflict resolved")

	// ErrUnavailable marks an unreachable backing store.
	ErrUnavailable = errors.New("store unavailable")
)

// Validationf wraps ErrValidation with a display message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound with the resource description.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Forbiddenf wraps ErrForbidden with a display message.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrForbidden}, args...)...)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsForbidden reports whether err is an authorization error.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// IsUnavailable reports whether err is a store availability error.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
