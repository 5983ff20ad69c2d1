package api

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies failures reported by the profile service.
type ErrorKind string

const (
	ErrNotFound    ErrorKind = "not_found"
	ErrForbidden   ErrorKind = "forbidden"
	ErrValidation  ErrorKind = "validation"
	ErrUnavailable ErrorKind = "unavailable"
	ErrNetwork     ErrorKind = "network"
)

// APIError is a structured failure from the profile service. Network-level
// failures (no HTTP response at all) carry kind ErrNetwork and a zero Status.
type APIError struct {
	Kind       ErrorKind
	Status     int
	StatusText string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("profile service returned %d %s", e.Status, e.StatusText)
	}
	if e.Detail != "" {
		return e.Detail
	}
	return "profile service unreachable"
}

func statusError(status int, detail string) *APIError {
	return &APIError{
		Kind:       kindForStatus(status),
		Status:     status,
		StatusText: http.StatusText(status),
		Detail:     detail,
	}
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		return ErrValidation
	default:
		// 5xx and anything unexpected count as the service being
		// unavailable; ErrNetwork is reserved for transport failures.
		return ErrUnavailable
	}
}
