package utils

import (
	"fmt"
	"io"
	"log/slog"
)

// maxResponseBodySize is the maximum response body size (10 MB). Enforced via
// io.LimitReader to prevent unbounded memory allocation from rogue responses.
const maxResponseBodySize int64 = 10 * 1024 * 1024

// ReadBodyLimited reads at most 10 MB from body and returns it as a string.
// It is used for error bodies and non-streamed responses, which are read
// whole.
func ReadBodyLimited(body io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxResponseBodySize))
	if err != nil {
		return string(data), fmt.Errorf("error reading response body: %w", err)
	}
	return string(data), nil
}

// CloseWithLog closes closer and logs, without returning, any close error.
// A close failure never overrides the outcome the caller already has.
func CloseWithLog(closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
