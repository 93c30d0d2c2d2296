package core

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		msgs := make([]string, 0, len(err.Fields))
		for _, fld := range err.Fields {
			msgs = append(msgs, fld.Field+": "+fld.Error)
		}
		return strings.Join(msgs, "; ")
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// IsValidation reports whether err (or its cause) was raised before reaching the backend.
func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// APIError is a non-2xx answer from the REST backend.
type APIError struct {
	Status int
	Detail string
}

func (err *APIError) Error() string {
	if err.Detail == "" {
		return http.StatusText(err.Status)
	}
	return err.Detail
}

// AsAPIError returns the APIError wrapped in err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether the backend rejected the credentials or the token.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// Message returns the message to show an operator for err: the backend's message when there is
// one, the validation message for validation errors, and fallback otherwise.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if vErr, ok := errors.Cause(err).(*ValidationError); ok {
		if msg := vErr.Error(); msg != "" {
			return msg
		}
	}
	return fallback
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
