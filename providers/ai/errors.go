package ai

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure produced by this module wraps exactly one of
// them, so callers classify with errors.Is.
var (
	// ErrBuild means the request could not be constructed locally. It never
	// reaches the network.
	ErrBuild = errors.New("request build failed")

	// ErrNetwork means the transport failed before a response arrived
	// (DNS, TLS, refused connection, timeout).
	ErrNetwork = errors.New("network failure")

	// ErrHTTP means the vendor answered with a non-2xx status.
	ErrHTTP = errors.New("non-2xx response")

	// ErrResponseParse means a complete response body lacked the expected shape.
	ErrResponseParse = errors.New("response parse failed")

	// ErrChunkParse means a single stream line looked like a JSON payload but
	// could not be decoded. It is recoverable: the stream continues.
	ErrChunkParse = errors.New("stream chunk parse failed")

	// ErrData means reading the body failed after a 2xx status, or the vendor
	// reported a failure in-band.
	ErrData = errors.New("stream data failure")
)

// Error carries the kind, the provider involved and a user-facing message.
type Error struct {
	Kind       error      // One of the Err* kinds above
	Provider   FormatType // Provider that produced or handled the failure
	StatusCode int        // HTTP status for ErrHTTP, zero otherwise
	Message    string     // User-facing text
	Err        error      // Underlying cause, may be nil
}

// Error returns the user-facing message.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprint(e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewBuildError wraps a local request construction failure.
func NewBuildError(provider FormatType, err error) *Error {
	return &Error{Kind: ErrBuild, Provider: provider, Message: "Request error: " + err.Error(), Err: err}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(provider FormatType, err error) *Error {
	return &Error{Kind: ErrNetwork, Provider: provider, Message: "Network error: " + err.Error(), Err: err}
}

// NewHTTPError records a non-2xx response; message is the output of the
// provider's ParseError.
func NewHTTPError(provider FormatType, statusCode int, message string) *Error {
	return &Error{Kind: ErrHTTP, Provider: provider, StatusCode: statusCode, Message: message}
}

// NewDataError wraps a failure while reading a successful response.
func NewDataError(provider FormatType, err error) *Error {
	return &Error{Kind: ErrData, Provider: provider, Message: "Data error: " + err.Error(), Err: err}
}

// NewResponseParseError wraps a failure to decode a complete response body.
func NewResponseParseError(provider FormatType, vendor string, err error) *Error {
	return &Error{Kind: ErrResponseParse, Provider: provider, Message: fmt.Sprintf("Failed to parse %s response: %v", vendor, err), Err: err}
}

// NewChunkParseError wraps a failure to decode one stream line.
func NewChunkParseError(provider FormatType, vendor string, err error) *Error {
	return &Error{Kind: ErrChunkParse, Provider: provider, Message: fmt.Sprintf("Failed to parse %s stream chunk: %v", vendor, err), Err: err}
}
