package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel error kinds. Services wrap these with fmt.Errorf("...: %w", ...)
// and handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrExternalProvider = errors.New("external provider failure")
)

// ValidationError carries the individual missing fields so the handler can
// list them in the response body.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// HTTPStatus resolves an error to the status code of its kind. Unknown errors
// resolve to 500 and must never leak their message to the client.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		// The frontend treats conflicts as ordinary 400s.
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
