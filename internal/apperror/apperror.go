// Package apperror defines the error kinds surfaced by the API and the HTTP
// status each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	UnknownError ErrorType = iota
	// UnauthorizedError means no usable identity was presented.
	UnauthorizedError
	// NotFoundOrUnauthorizedError covers owner-scoped writes where the target
	// is missing or owned by someone else. The two cases are not distinguished.
	NotFoundOrUnauthorizedError
	NotFoundError
	DuplicateNameError
	ConflictError
	ValidationError
	UpstreamError
)

type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	switch e.Type {
	case UnauthorizedError:
		return http.StatusUnauthorized
	case NotFoundOrUnauthorizedError, NotFoundError:
		return http.StatusNotFound
	case DuplicateNameError, ValidationError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse exposes only the user-facing message, never the wrapped cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

func NewUnauthorized(message string) *AppError {
	return New(UnauthorizedError, message, nil)
}

func NewNotFoundOrUnauthorized(message string) *AppError {
	return New(NotFoundOrUnauthorizedError, message, nil)
}

func NewNotFound(message string) *AppError {
	return New(NotFoundError, message, nil)
}

func NewDuplicateName(message string, underlying error) *AppError {
	return New(DuplicateNameError, message, underlying)
}

func NewConflict(message string, underlying error) *AppError {
	return New(ConflictError, message, underlying)
}

func NewValidation(message string) *AppError {
	return New(ValidationError, message, nil)
}

func NewUpstream(message string, underlying error) *AppError {
	return New(UpstreamError, message, underlying)
}

// FromError finds an AppError anywhere in the chain. Anything else is
// reported as an upstream failure so callers always get a status code.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewUpstream("internal server error", err)
}

func is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

func IsUnauthorized(err error) bool           { return is(err, UnauthorizedError) }
func IsNotFoundOrUnauthorized(err error) bool { return is(err, NotFoundOrUnauthorizedError) }
func IsNotFound(err error) bool               { return is(err, NotFoundError) }
func IsDuplicateName(err error) bool          { return is(err, DuplicateNameError) }
func IsConflict(err error) bool               { return is(err, ConflictError) }
func IsValidation(err error) bool             { return is(err, ValidationError) }
