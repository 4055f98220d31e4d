// Package memory defines the Provider interface for conversation history.
// A history is the ordered []ai.Message sent with every ask; the streaming
// client never stores it, so whoever drives a chat session keeps one here and
// appends the accumulated assistant reply once a stream completes.
// The bundled implementation lives in the sibling package
// [github.com/zerocore/aistream/providers/memory/inmemory].
package memory
