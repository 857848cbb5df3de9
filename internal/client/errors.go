package client

import (
	"fmt"

	"pharmastock/pkg/validator"
)

// ValidationError is returned before any request is sent when a record
// breaks a write rule.
type ValidationError struct {
	Violations validator.Errors
}

func (e *ValidationError) Error() string { return e.Violations.Error() }

// TransportError wraps a failure to reach the server or read its answer.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestError is a non-2xx answer, or a 2xx answer whose body could not be
// decoded (Err is then set). Body is the raw response body.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: status %d: %v: %s", e.Method, e.URL, e.StatusCode, e.Err, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }

// NotFoundError is a 404 on an id-addressed operation. errors.As matches it
// as a *RequestError too.
type NotFoundError struct {
	RequestError
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.RequestError.Error()
}

func (e *NotFoundError) Unwrap() error { return &e.RequestError }
