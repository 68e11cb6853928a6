package apperror

import (
	"errors"
	"net/http"
)

// Sentinel errors for the portal's error taxonomy. Services wrap these (via
// New) with a user-facing message; handlers map them to HTTP status codes
// with MapErrorToStatus. A redundant matched transition is deliberately NOT
// an error — it is a documented no-op, so no sentinel exists for it.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
	ErrInvalidInput = errors.New("invalid input")
)

// AppError carries a user-facing message on top of a sentinel error. Code
// overrides the sentinel's mapped HTTP status when non-zero.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError wrapping a sentinel.
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps the error taxonomy to HTTP status codes. An AppError
// with an explicit Code wins over its wrapped sentinel.
func MapErrorToStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}

	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	// Unclassified errors are persistence or programming faults.
	return http.StatusInternalServerError
}
