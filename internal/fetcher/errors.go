package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorType represents the category of failure that occurred during an extraction
type ErrorType string

const (
	// ErrorTypeTransport indicates the request never produced a response (connection refused, DNS, etc.)
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeTimeout indicates the request timed out or its context expired
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeStatus indicates the upstream answered with a non-200 status
	ErrorTypeStatus ErrorType = "status"
	// ErrorTypeNoData indicates the page was fetched but carried no usable price block
	ErrorTypeNoData ErrorType = "no_data"
)

// StatusClass further describes an ErrorTypeStatus failure for logging and metrics
type StatusClass string

const (
	StatusClassRateLimit StatusClass = "rate_limit"
	StatusClassServer    StatusClass = "server"
	StatusClassClient    StatusClass = "client"
	StatusClassOther     StatusClass = "other"
)

// ExtractionFailure is the typed outcome of an unsuccessful extraction.
// Its Error method returns Message unchanged so that callers can show it
// to users verbatim.
type ExtractionFailure struct {
	Type       ErrorType
	Identifier string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *ExtractionFailure) Error() string {
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ExtractionFailure) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a failure for a request that got no response
func NewTransportError(identifier string, cause error) *ExtractionFailure {
	return &ExtractionFailure{
		Type:       ErrorTypeTransport,
		Identifier: identifier,
		Message:    fmt.Sprintf("Failed to fetch data for %s: %v", identifier, cause),
		Cause:      cause,
	}
}

// NewTimeoutError creates a failure for a request that timed out
func NewTimeoutError(identifier string, cause error) *ExtractionFailure {
	return &ExtractionFailure{
		Type:       ErrorTypeTimeout,
		Identifier: identifier,
		Message:    fmt.Sprintf("Failed to fetch data for %s: request timed out", identifier),
		Cause:      cause,
	}
}

// NewStatusError creates a failure for a non-200 response
func NewStatusError(identifier string, statusCode int) *ExtractionFailure {
	return &ExtractionFailure{
		Type:       ErrorTypeStatus,
		Identifier: identifier,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Failed to fetch data for %s, status code: %d", identifier, statusCode),
	}
}

// NewNoDataError creates a failure for a page without a matching price block
func NewNoDataError(identifier string) *ExtractionFailure {
	return &ExtractionFailure{
		Type:       ErrorTypeNoData,
		Identifier: identifier,
		Message:    fmt.Sprintf("Could not find price data for %s", identifier),
	}
}

// ClassifyRequestError turns an error returned by the HTTP client into a
// transport or timeout failure.
func ClassifyRequestError(identifier string, err error) *ExtractionFailure {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewTimeoutError(identifier, err)
	}
	return NewTransportError(identifier, err)
}

// ClassifyStatus maps an HTTP status code to a StatusClass
func ClassifyStatus(statusCode int) StatusClass {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return StatusClassRateLimit
	case statusCode >= 500:
		return StatusClassServer
	case statusCode >= 400:
		return StatusClassClient
	default:
		return StatusClassOther
	}
}

// TypeOf returns the ErrorType carried by err, or "" if err is not an
// *ExtractionFailure.
func TypeOf(err error) ErrorType {
	var failure *ExtractionFailure
	if errors.As(err, &failure) {
		return failure.Type
	}
	return ""
}
