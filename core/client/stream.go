package client

import "context"

// EventType identifies the kind of a stream Event.
type EventType int

const (
	// EventMessage carries one text delta in Event.Text.
	EventMessage EventType = iota
	// EventDone is the terminal event. Event.Err is nil on success and an
	// *ai.Error otherwise.
	EventDone
)

// String returns "message" or "done".
func (t EventType) String() string {
	if t == EventDone {
		return "done"
	}
	return "message"
}

// Event is one element of a Stream.
type Event struct {
	Type EventType
	Text string
	Err  error
}

// defaultEventBuffer bounds how far the worker may run ahead of a slow consumer.
const defaultEventBuffer = 64

// Stream delivers the events of one request. Message events arrive in the
// order their lines were read; exactly one EventDone follows them, after
// which the channel is closed.
//
// Callers should drain Events until it is closed. A caller that stops
// reading must cancel the request's context: the worker then drops any event
// the consumer would not take, closes the channel and exits. Each and Ask
// still report the terminal error in that case.
type Stream struct {
	events chan Event

	// terminal is written before events is closed and read only after the
	// close has been observed.
	terminal error
}

func newStream(buffer int) *Stream {
	if buffer < 1 {
		buffer = 1
	}
	return &Stream{events: make(chan Event, buffer)}
}

// Events returns the event channel.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Each calls onDelta for every message event and returns the terminal error.
func (s *Stream) Each(onDelta func(delta string)) error {
	for event := range s.events {
		if event.Type == EventMessage {
			onDelta(event.Text)
		}
	}
	return s.terminal
}

// send delivers a message event. It returns false when ctx is cancelled
// before the consumer accepts the event.
func (s *Stream) send(ctx context.Context, text string) bool {
	select {
	case s.events <- Event{Type: EventMessage, Text: text}:
		return true
	case <-ctx.Done():
		return false
	}
}

// finish delivers the terminal event and closes the channel. It is called
// exactly once per stream, by the goroutine that owns it. When the buffer is
// full and ctx is done, the event is dropped so the worker never blocks on a
// consumer that has gone away.
func (s *Stream) finish(ctx context.Context, err error) {
	s.terminal = err
	done := Event{Type: EventDone, Err: err}
	select {
	case s.events <- done:
	default:
		select {
		case s.events <- done:
		case <-ctx.Done():
		}
	}
	close(s.events)
}
