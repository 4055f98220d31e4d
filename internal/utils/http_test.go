package utils

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

type closeRecorder struct {
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

// TestReadBodyLimited_ReadsWholeBody verifies a normal body is returned intact.
func TestReadBodyLimited_ReadsWholeBody(t *testing.T) {
	got, err := ReadBodyLimited(strings.NewReader(`{"error":{"message":"boom"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"error":{"message":"boom"}}` {
		t.Errorf("unexpected body %q", got)
	}
}

// TestReadBodyLimited_PropagatesReadErrors verifies read failures are wrapped.
func TestReadBodyLimited_PropagatesReadErrors(t *testing.T) {
	_, err := ReadBodyLimited(iotest.ErrReader(io.ErrClosedPipe))
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("expected wrapped io.ErrClosedPipe, got %v", err)
	}
}

// TestCloseWithLog verifies the closer is closed and errors are swallowed.
func TestCloseWithLog(t *testing.T) {
	recorder := &closeRecorder{err: errors.New("close failed")}
	CloseWithLog(recorder)
	if !recorder.closed {
		t.Error("expected Close to be called")
	}

	// nil closers are ignored
	CloseWithLog(nil)
}
