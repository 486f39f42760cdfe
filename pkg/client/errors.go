package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrMalformedResponse is returned when the response body is not the expected JSON envelope.
	ErrMalformedResponse = errors.New("malformed search response")

	// ErrInvalidPage is returned when the search config holds a non-integer page.
	ErrInvalidPage = errors.New("invalid page value")

	// ErrMissingTitle is returned when keyword filtering meets an item without a string title.
	ErrMissingTitle = errors.New("item has no title")
)

// APIError is a failed ItemListing request.
type APIError struct {
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("goodwill %s error (status %d): %s: %v",
			e.Class, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("goodwill %s error (status %d): %s",
		e.Class, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status to an error class. 2xx yields "".
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ""
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ErrorClassClient
	}
}
