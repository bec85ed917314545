// Package errs defines the error kinds the engine surfaces to callers.
// Handlers map these to HTTP status codes; services return them directly.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError marks malformed or missing input. Not retryable without
// the caller changing the request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AuthenticationError marks bad credentials or an unresolvable session.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

func Authentication(format string, args ...any) error {
	return &AuthenticationError{Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError marks a caller that lacks rights over the target
// entity. Never retried.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func Authorization(format string, args ...any) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks an entity ID that does not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError marks a slot that is not available. The caller should pick
// another date rather than retry.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError marks a transition that is not legal from the current
// status. Usually means the caller is acting on a stale view.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

func InvalidState(format string, args ...any) error {
	return &InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

// ConcurrentModificationError marks an optimistic-concurrency version
// mismatch. The caller should refetch and retry.
type ConcurrentModificationError struct {
	Message string
}

func (e *ConcurrentModificationError) Error() string { return e.Message }

func ConcurrentModification(format string, args ...any) error {
	return &ConcurrentModificationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsAuthentication(err error) bool {
	var e *AuthenticationError
	return errors.As(err, &e)
}

func IsAuthorization(err error) bool {
	var e *AuthorizationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsInvalidState(err error) bool {
	var e *InvalidStateError
	return errors.As(err, &e)
}

func IsConcurrentModification(err error) bool {
	var e *ConcurrentModificationError
	return errors.As(err, &e)
}
