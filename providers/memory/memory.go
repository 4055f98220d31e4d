package memory

import (
	"context"

	"github.com/zerocore/aistream/providers/ai"
)

// Provider stores the conversation of one chat session. Implementations must
// be safe for concurrent use: a streaming reply may be appended from the
// worker goroutine while the caller reads the history.
type Provider interface {
	// AppendMessage stores message at the end of the history.
	AppendMessage(ctx context.Context, message ai.Message)

	// Messages returns all messages in order when limit is zero or negative.
	// Otherwise it returns at most the last limit messages, trimmed further
	// so the window opens on a user message. The slice is a copy.
	Messages(ctx context.Context, limit int) ([]ai.Message, error)

	// PopLastMessage removes and returns the newest message, or nil when the
	// history is empty.
	PopLastMessage(ctx context.Context) (*ai.Message, error)

	// Count returns the number of stored messages.
	Count(ctx context.Context) (int, error)

	// ClearMessages empties the history.
	ClearMessages(ctx context.Context)
}
