package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Taxonomy constructors. Services fail with Validation before any store
// write; NotFound is surfaced on update/delete of a missing identifier;
// Conflict is reserved for optimistic-concurrency retry exhaustion.

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "invalid_argument", fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, "conflict", fmt.Errorf(format, args...))
}

func Persistence(err error) *Error {
	return New(http.StatusInternalServerError, "persistence_error", err)
}

func Upstream(err error) *Error {
	return New(http.StatusBadGateway, "upstream_error", err)
}

func IsValidation(err error) bool { return hasCode(err, "invalid_argument") }
func IsNotFound(err error) bool   { return hasCode(err, "not_found") }
func IsConflict(err error) bool   { return hasCode(err, "conflict") }

func hasCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// StatusOf maps any error to an HTTP status for the response layer.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf returns the machine-readable code, defaulting to internal_error.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "internal_error"
}
