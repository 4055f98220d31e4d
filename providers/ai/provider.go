package ai

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// Provider is the capability set implemented once per vendor family. It owns
// request construction and response decoding for its wire format and nothing
// else: implementations are stateless, perform no I/O and are safe to share
// across concurrent requests.
type Provider interface {
	// FormatType returns the identifier this provider is registered under.
	FormatType() FormatType

	// DisplayName returns a human-readable label for the vendor family.
	DisplayName() string

	// BuildRequest turns a profile, a conversation and a system prompt into
	// the vendor's HTTP request. It is deterministic for identical inputs.
	// Failures are *Error values of kind ErrBuild.
	BuildRequest(profile ProviderProfile, messages []Message, systemPrompt string, stream bool) (*WireRequest, error)

	// ParseResponse extracts the assistant's full text from a complete,
	// non-streamed response body. Failures are of kind ErrResponseParse.
	ParseResponse(body string) (string, error)

	// ParseStreamChunk decodes one line of a streamed response. ok is false
	// for lines that carry no content (framing, keep-alives, empty lines,
	// events without text). An error of kind ErrChunkParse is returned only
	// when the line looks like a JSON payload but cannot be decoded.
	ParseStreamChunk(line string) (delta string, ok bool, err error)

	// IsStreamComplete reports whether line is the vendor's explicit
	// completion sentinel.
	IsStreamComplete(line string) bool

	// ParseError turns a non-2xx response into a user-facing message.
	ParseError(statusCode int, body string) string
}

// StreamErrorDetector is implemented by providers whose streams can report a
// vendor failure in-band, after a 2xx status was already sent. The streaming
// client checks it before ParseStreamChunk and ends the stream with an
// ErrData error carrying the returned message.
type StreamErrorDetector interface {
	StreamError(line string) (message string, ok bool)
}

// WireRequest is a fully built vendor request, independent of any transport.
type WireRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// HTTPRequest materialises the wire request as an *http.Request bound to ctx.
func (w *WireRequest) HTTPRequest(ctx context.Context) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, w.Method, w.URL, bytes.NewReader(w.Body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, values := range w.Header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}
	return request, nil
}
