package client

import "fmt"

type ErrorKind string

const (
	ErrorUnknown     ErrorKind = "unknown_error"
	ErrorValidation  ErrorKind = "validation_error"
	ErrorNotFound    ErrorKind = "not_found"
	ErrorConflict    ErrorKind = "conflict"
	ErrorUnavailable ErrorKind = "server_unavailable"
)

// APIError is returned for any response whose envelope does not report
// success.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (http %d)", e.Kind, e.Message, e.Status)
}

func classifyStatus(status int) ErrorKind {
	switch status {
	case 400:
		return ErrorValidation
	case 404:
		return ErrorNotFound
	case 409:
		return ErrorConflict
	}
	if status >= 500 {
		return ErrorUnavailable
	}
	return ErrorUnknown
}
