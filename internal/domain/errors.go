package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the pipeline stage that produced a failure.
type Kind string

const (
	KindMissingParameter       Kind = "missing_parameter"
	KindInvalidURL             Kind = "invalid_url"
	KindUpstreamError          Kind = "upstream_error"
	KindUnsupportedContentType Kind = "unsupported_content_type"
	KindPayloadTooLarge        Kind = "payload_too_large"
	KindConversionFailed       Kind = "conversion_failed"
	KindTimeout                Kind = "timeout"
	KindUnexpected             Kind = "unexpected"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// APIError is a terminal conversion-pipeline failure. It carries the exact
// client-visible message and HTTP status; the first error raised in the
// pipeline wins and there is no aggregation or retry.
type APIError struct {
	Kind    Kind
	Message string
	Status  int
}

// Error implements the error interface
func (e *APIError) Error() string { return e.Message }

// StatusCode implements the HTTPError interface
func (e *APIError) StatusCode() int { return e.Status }

// ErrMissingParameter reports an absent or empty url query parameter.
func ErrMissingParameter() *APIError {
	return &APIError{
		Kind:    KindMissingParameter,
		Message: "URL parameter is required",
		Status:  http.StatusBadRequest,
	}
}

// ErrInvalidURL reports a target that failed parsing or is not http(s).
func ErrInvalidURL() *APIError {
	return &APIError{
		Kind:    KindInvalidURL,
		Message: "Invalid URL format. Must be a valid HTTP or HTTPS URL",
		Status:  http.StatusBadRequest,
	}
}

// ErrUpstream reports a non-2xx response from the target. The upstream
// status code is surfaced to the client unchanged.
func ErrUpstream(url string, status int, statusText string) *APIError {
	return &APIError{
		Kind:    KindUpstreamError,
		Message: fmt.Sprintf("Failed to fetch %s: %s", url, statusText),
		Status:  status,
	}
}

// ErrUnsupportedContentType reports a fetched resource that is not HTML.
func ErrUnsupportedContentType() *APIError {
	return &APIError{
		Kind:    KindUnsupportedContentType,
		Message: "Only HTML content is supported",
		Status:  http.StatusBadRequest,
	}
}

// ErrPayloadTooLarge reports a decoded body over the size gate.
func ErrPayloadTooLarge() *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: "Content too large. Maximum size is 10MB",
		Status:  http.StatusRequestEntityTooLarge,
	}
}

// ErrConversionFailed reports a nil or empty converter result.
func ErrConversionFailed() *APIError {
	return &APIError{
		Kind:    KindConversionFailed,
		Message: "Failed to convert HTML to Markdown",
		Status:  http.StatusInternalServerError,
	}
}

// ErrTimeout reports an aborted fetch or conversion.
func ErrTimeout() *APIError {
	return &APIError{
		Kind:    KindTimeout,
		Message: "Request timeout",
		Status:  http.StatusGatewayTimeout,
	}
}

// ErrUnexpected reports any other transport or converter failure caught
// inside the pipeline. Internal details are logged, never sent to clients.
func ErrUnexpected() *APIError {
	return &APIError{
		Kind:    KindUnexpected,
		Message: "Internal server error while processing request",
		Status:  http.StatusInternalServerError,
	}
}

// AsAPIError unwraps err into an *APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
