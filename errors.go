package xai

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyEndpoint is returned when Options has no endpoint.
	ErrEmptyEndpoint = errors.New("xai: endpoint is required")

	// ErrEmptyModel is returned when Options has no model.
	ErrEmptyModel = errors.New("xai: model is required")

	// ErrInvalidMaxTokens is returned when Options.MaxTokens is set to a
	// value that is not positive.
	ErrInvalidMaxTokens = errors.New("xai: max tokens must be positive")
)

// TransportError is returned when the HTTP request could not be completed,
// for example on DNS, connection, TLS, or timeout failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the response body could not be read or is
// not valid JSON.
type DecodeError struct {
	// StatusCode is the HTTP status of the response whose body failed to decode.
	StatusCode int

	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode HTTP response body (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RemoteError is an error reported by the API itself, returned for non-2xx
// responses whose body carries a recognizable message.
//
// Error returns Message verbatim.
type RemoteError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Code is the optional "code" field sent next to the message, such as
	// "Client specified an invalid argument".
	Code string

	// Message is the API-provided error message.
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// ErrNoOptions is returned when Generate is called with nil Options.
var ErrNoOptions = errors.New("xai: options are required")
