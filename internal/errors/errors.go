package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is authenticated but not allowed to act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRole is returned when a role precondition is unmet, e.g. assigning a non-subemployee.
	ErrInvalidRole = errors.New("invalid role for this operation")
	// ErrUnauthenticated is returned when the credential is missing, invalid or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrConflict is returned on duplicate unique fields, e.g. an already registered email.
	ErrConflict = errors.New("conflict")
	// ErrUpstreamFailure is returned when an external service (email, SMS, phone verification) fails.
	ErrUpstreamFailure = errors.New("upstream service failure")
	// ErrUnassigned is returned when resolving a complaint that has no assigned sub-employee.
	ErrUnassigned = errors.New("complaint has no assigned employee")
	// ErrNoCategorySelected is returned when an employee operation requires a selected category.
	ErrNoCategorySelected = errors.New("no category selected")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, ErrUnassigned):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNASSIGNED")
	case errors.Is(err, ErrNoCategorySelected):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_CATEGORY_SELECTED")
	case errors.Is(err, ErrUpstreamFailure):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "UPSTREAM_FAILURE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// WithMessage annotates a taxonomy error with a more specific message while
// keeping errors.Is matching intact.
func WithMessage(sentinel error, msg string) error {
	return &wrapped{sentinel: sentinel, msg: msg}
}

type wrapped struct {
	sentinel error
	msg      string
}

func (w *wrapped) Error() string { return w.msg }

func (w *wrapped) Unwrap() error { return w.sentinel }
