package core

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType represents the category of failure during retrieval or extraction.
type ErrorType string

const (
	// ErrorTypeTransport indicates a network-level failure (DNS, TLS, connection refused).
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeTimeout indicates the request exceeded its deadline.
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeHTTPStatus indicates a non-2xx response.
	ErrorTypeHTTPStatus ErrorType = "http_status"
	// ErrorTypeEncoding indicates the body could not be decoded with the chosen charset.
	ErrorTypeEncoding ErrorType = "encoding"
	// ErrorTypeStructure indicates an expected DOM path was absent.
	ErrorTypeStructure ErrorType = "structure"
)

// FetchError is a structured failure from the fetch/extract layer.
// These are logged and absorbed; they never cross the service boundary.
type FetchError struct {
	Type       ErrorType
	StatusCode int
	URL        string
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewTransportError wraps a client error, classifying deadline expiry as a timeout.
func NewTransportError(url string, cause error) *FetchError {
	if isTimeout(cause) {
		return &FetchError{
			Type:    ErrorTypeTimeout,
			URL:     url,
			Message: "request timed out",
			Cause:   cause,
		}
	}
	return &FetchError{
		Type:    ErrorTypeTransport,
		URL:     url,
		Message: "network request failed",
		Cause:   cause,
	}
}

// ClassifyStatus builds the error for a non-2xx status code.
func ClassifyStatus(url string, statusCode int) *FetchError {
	var msg string
	switch {
	case statusCode == 429:
		msg = "rate limited by upstream"
	case statusCode >= 500:
		msg = "server returned an error"
	case statusCode >= 400:
		msg = fmt.Sprintf("client error: HTTP %d", statusCode)
	default:
		msg = fmt.Sprintf("unexpected status code: %d", statusCode)
	}
	return &FetchError{
		Type:       ErrorTypeHTTPStatus,
		StatusCode: statusCode,
		URL:        url,
		Message:    msg,
	}
}

// NewEncodingError reports a charset that could not be applied.
func NewEncodingError(url, label string, cause error) *FetchError {
	return &FetchError{
		Type:    ErrorTypeEncoding,
		URL:     url,
		Message: fmt.Sprintf("cannot decode as %q", label),
		Cause:   cause,
	}
}

// NewStructureError reports a query that matched nothing.
func NewStructureError(url string, q PathQuery) *FetchError {
	return &FetchError{
		Type:    ErrorTypeStructure,
		URL:     url,
		Message: fmt.Sprintf("no node matches %q", q.String()),
	}
}

// IsType reports whether err is a FetchError of the given type.
func IsType(err error, t ErrorType) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Type == t
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
