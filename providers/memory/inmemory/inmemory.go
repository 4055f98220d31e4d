package inmemory

import (
	"context"
	"sync"

	"github.com/zerocore/aistream/providers/ai"
	"github.com/zerocore/aistream/providers/memory"
	"github.com/zerocore/aistream/providers/observability"
)

// ArrayMemory is a slice-backed conversation history guarded by an RWMutex.
type ArrayMemory struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// Ensure ArrayMemory implements memory.Provider at compile time.
var _ memory.Provider = (*ArrayMemory)(nil)

// New returns an empty ArrayMemory.
func New() *ArrayMemory {
	return &ArrayMemory{messages: []ai.Message{}}
}

// AppendMessage stores message. A span in ctx receives an append event.
func (m *ArrayMemory) AppendMessage(ctx context.Context, message ai.Message) {
	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventMemoryAppend,
			observability.String(observability.AttrMemoryMessageRole, string(message.Role)),
			observability.Int(observability.AttrMemoryMessageLength, len(message.Content)),
		)
	}

	m.mu.Lock()
	m.messages = append(m.messages, message)
	total := len(m.messages)
	m.mu.Unlock()

	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrMemoryTotalMessages, total))
	}
}

// Messages returns a copy of all messages when limit <= 0. Otherwise it
// returns at most the last limit messages, starting at the first user
// message of that window. The result is never nil.
func (m *ArrayMemory) Messages(_ context.Context, limit int) ([]ai.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := 0
	if limit > 0 && limit < len(m.messages) {
		start = len(m.messages) - limit
		for start < len(m.messages) && m.messages[start].Role != ai.RoleUser {
			start++
		}
	}
	out := make([]ai.Message, len(m.messages)-start)
	copy(out, m.messages[start:])
	return out, nil
}

// PopLastMessage removes and returns the newest message, or nil if empty.
func (m *ArrayMemory) PopLastMessage(_ context.Context) (*ai.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return nil, nil
	}
	idx := len(m.messages) - 1
	msg := m.messages[idx]
	m.messages = m.messages[:idx]
	return &msg, nil
}

// Count returns the number of stored messages.
func (m *ArrayMemory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages), nil
}

// ClearMessages removes all messages, keeping the slice capacity.
func (m *ArrayMemory) ClearMessages(ctx context.Context) {
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventMemoryClear)
	}

	m.mu.Lock()
	m.messages = m.messages[:0]
	m.mu.Unlock()
}
