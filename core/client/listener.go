package client

// Listener receives the outcome of Client.Ask. Callbacks run on the request's
// worker goroutine, never on the goroutine that called Ask; state shared with
// other goroutines must be synchronised by the listener.
//
// OnMessage is called once per delta, in order. OnError is called at most
// once, OnComplete exactly once, and both come after every OnMessage.
type Listener interface {
	OnMessage(delta string)
	OnError(message string)
	OnComplete()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Message  func(delta string)
	Error    func(message string)
	Complete func()
}

// Ensure ListenerFuncs implements Listener
var _ Listener = ListenerFuncs{}

func (l ListenerFuncs) OnMessage(delta string) {
	if l.Message != nil {
		l.Message(delta)
	}
}

func (l ListenerFuncs) OnError(message string) {
	if l.Error != nil {
		l.Error(message)
	}
}

func (l ListenerFuncs) OnComplete() {
	if l.Complete != nil {
		l.Complete()
	}
}

// dispatch replays a stream onto a listener. The terminal callbacks fire once
// the channel is closed, even if the done event itself was dropped.
func dispatch(stream *Stream, listener Listener) {
	for event := range stream.Events() {
		if event.Type == EventMessage {
			listener.OnMessage(event.Text)
		}
	}
	if stream.terminal != nil {
		listener.OnError(stream.terminal.Error())
	}
	listener.OnComplete()
}
