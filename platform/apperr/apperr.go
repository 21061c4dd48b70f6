// Package apperr provides standardized domain error types for the application.
// Services return these typed errors, and the HTTP layer maps them to status
// codes and a stable machine-readable code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"phonenumber_service/platform/phone"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindValidation indicates input that was understood but rejected.
	KindValidation
	// KindBadRequest indicates a malformed or invalid request.
	KindBadRequest
	// KindUnsupported indicates a request for a conversion the service does not offer.
	KindUnsupported
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a domain error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Code    string      // Stable machine-readable code (optional)
	Message string
	Op      string      // Operation that failed (optional)
	Err     error       // Underlying error (optional)
	Details interface{} // Additional details for response (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnsupported:
		return http.StatusUnsupportedMediaType
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// New creates a new domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// WithCode returns the error with the stable code set.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// WithDetails returns the error with additional details.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// BadRequest creates a bad request error.
func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

// Internal creates an internal server error.
func Internal(message string) *Error {
	return New(KindInternal, message)
}

// FromPhone translates errors from the phone package so no engine error
// reaches a client unwrapped. Decode failures and violations share the single
// phone.ErrorCode; configuration errors become bad requests when caused by an
// unsupported pairing and internal errors otherwise.
func FromPhone(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var violation *phone.Violation
	if errors.As(err, &violation) {
		return Wrap(KindValidation, violation.Render(), err).WithCode(phone.ErrorCode)
	}

	var decodeErr *phone.DecodeError
	if errors.As(err, &decodeErr) {
		return Wrap(KindValidation, "This value is not a valid phone number.", err).
			WithCode(phone.ErrorCode).
			WithDetails(map[string]interface{}{
				"reason":     decodeErr.Reason,
				"engineCode": decodeErr.Code.String(),
			})
	}

	if errors.Is(err, phone.ErrUnsupportedType) {
		return Wrap(KindUnsupported, err.Error(), err)
	}

	var configErr *phone.ConfigurationError
	if errors.As(err, &configErr) {
		return Wrap(KindBadRequest, configErr.Error(), err)
	}

	return Wrap(KindInternal, "internal error", err)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
