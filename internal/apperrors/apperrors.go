package apperrors

import "net/http"

// RequestError is a business-rule failure carrying the HTTP status it should
// be serialized with and a machine-readable reason code.
type RequestError struct {
	Status int
	Code   string
}

// Error returns the reason code, e.g. "invalid_credentials".
func (e *RequestError) Error() string {
	return e.Code
}

// New creates a RequestError with an explicit status and reason code.
func New(status int, code string) *RequestError {
	return &RequestError{Status: status, Code: code}
}

// NotFound creates a 404 RequestError.
func NotFound(code string) *RequestError {
	return New(http.StatusNotFound, code)
}

// Unauthorized creates a 401 RequestError.
func Unauthorized(code string) *RequestError {
	return New(http.StatusUnauthorized, code)
}

// Forbidden creates a 403 RequestError.
func Forbidden(code string) *RequestError {
	return New(http.StatusForbidden, code)
}

// UnprocessableEntity creates a 422 RequestError for business-rule conflicts
// such as duplicate names.
func UnprocessableEntity(code string) *RequestError {
	return New(http.StatusUnprocessableEntity, code)
}
