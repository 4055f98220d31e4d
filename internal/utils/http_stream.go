package utils

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineSize is the maximum size of a single stream line (1 MB).
// The default bufio.Scanner limit is 64 KiB, which is too small for
// large payloads such as long completions sent in one event. If a line
// exceeds this limit ReadLine returns an error wrapping bufio.ErrTooLong.
const maxLineSize = 1 * 1024 * 1024

// LineReader reads a streamed response body one line at a time. Unlike an
// SSE event parser it does not interpret the lines: every line, including
// empty lines, comments and "event:" fields, is handed to the caller, which
// lets each vendor decide what its framing means.
type LineReader struct {
	scanner *bufio.Scanner
}

// NewLineReader creates a LineReader over reader. Lines may end in "\n" or
// "\r\n"; the terminator is stripped. A final line without terminator is
// still returned.
func NewLineReader(reader io.Reader) *LineReader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineReader{scanner: scanner}
}

// ReadLine returns the next line. It returns io.EOF only once the source is
// exhausted cleanly; any other read failure, including a body truncated by
// the transport (io.ErrUnexpectedEOF), is returned wrapped.
func (lineReader *LineReader) ReadLine() (string, error) {
	if lineReader.scanner.Scan() {
		return lineReader.scanner.Text(), nil
	}
	if err := lineReader.scanner.Err(); err != nil {
		return "", fmt.Errorf("stream read error: %w", err)
	}
	return "", io.EOF
}
