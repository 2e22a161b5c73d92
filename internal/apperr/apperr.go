// Package apperr defines the error taxonomy every service returns and the
// handlers translate to HTTP status codes. Services wrap these sentinels
// with fmt.Errorf("%w: ...") so callers can both classify and read them.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated: missing or invalid credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden: authenticated, but role or ownership does not allow it.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: record absent, or deliberately hidden from this caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest: malformed input, duplicate email, bad transition.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInternal: storage or notification failure.
	ErrInternal = errors.New("internal error")
)

// HTTPStatus maps an error to the status code the API contract uses.
// Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
