package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of the transport status code.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindInvalidState Kind = "invalid_state"
	KindUnauthorized Kind = "unauthorized"
	KindConflict     Kind = "conflict"
	KindPersistence  Kind = "persistence"
)

const persistenceMessage = "internal server error"

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`

	cause error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Kind: KindForbidden}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource", Kind: KindForbidden}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause of a persistence failure.
func (e *Failure) Unwrap() error {
	return e.cause
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Kind:    KindValidation,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Kind:    KindValidation,
	}
}

// InvalidState returns a new Failure for an operation not allowed in the entity's current state.
func InvalidState(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Kind:    KindInvalidState,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
		Kind:    KindUnauthorized,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
			Kind:    KindPersistence,
		}
	}

	return nil
}

// Persistence wraps a storage error. The message stays generic, the cause is kept for logs.
func Persistence(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: persistenceMessage,
			Kind:    KindPersistence,
			cause:   err,
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
		Kind:    KindNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
		Kind:    KindConflict,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
		Kind:    KindForbidden,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the message of the first Failure in the chain, or the error text.
func GetMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return err.Error()
}

// GetKind returns the kind of the first Failure in the chain, or KindPersistence.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindPersistence
}

// IsKind reports whether err carries a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind == kind
	}

	return false
}
