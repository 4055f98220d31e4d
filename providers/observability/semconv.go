package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across the providers and the streaming client.

// --- Provider Attributes ---

const (
	// AttrLLMProvider is the format identifier of the provider ("openai", "claude", "gemini")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier from the profile
	AttrLLMModel = "llm.model"

	// AttrLLMStreaming reports whether the request asked for a stream
	AttrLLMStreaming = "llm.streaming"

	// AttrProfileID is the opaque profile identity
	AttrProfileID = "profile.id"

	// AttrProfileName is the profile display label
	AttrProfileName = "profile.name"
)

// --- Request/Stream Attributes ---

const (
	// AttrRequestMessagesCount is the number of conversation entries sent
	AttrRequestMessagesCount = "request.messages_count"

	// AttrStreamLines is the number of body lines read
	AttrStreamLines = "stream.lines"

	// AttrStreamDeltas is the number of message events emitted
	AttrStreamDeltas = "stream.deltas"

	// AttrStreamChunkErrors is the number of lines skipped as malformed
	AttrStreamChunkErrors = "stream.chunk_errors"

	// AttrStreamLine is a (truncated) raw stream line
	AttrStreamLine = "stream.line"

	// AttrStreamEnd is how the stream ended ("sentinel", "eof", "error", "cancelled")
	AttrStreamEnd = "stream.end"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrErrorKind is the error kind from the ai package taxonomy
	AttrErrorKind = "error.kind"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanClientAsk is the span covering one streamed ask, from request build
	// to the terminal event
	SpanClientAsk = "client.ask"

	// SpanClientComplete is the span covering one non-streamed request
	SpanClientComplete = "client.complete"
)

// --- Event Names ---

const (
	// EventRequestBuilt marks a successfully built wire request
	EventRequestBuilt = "llm.request.built"

	// EventResponseHeaders marks the arrival of response headers
	EventResponseHeaders = "llm.response.headers"

	// EventStreamSentinel marks the vendor's completion sentinel
	EventStreamSentinel = "llm.stream.sentinel"

	// EventChunkSkipped marks a malformed line skipped by chunk isolation
	EventChunkSkipped = "llm.stream.chunk_skipped"
)

// --- Metric Names ---

const (
	// MetricAskCount counts asks by provider and outcome
	MetricAskCount = "aistream.client.ask.count"

	// MetricAskDuration records ask duration in milliseconds
	MetricAskDuration = "aistream.client.ask.duration"

	// MetricStreamDeltas counts emitted message events
	MetricStreamDeltas = "aistream.client.stream.deltas"

	// MetricStreamChunkErrors counts malformed lines skipped
	MetricStreamChunkErrors = "aistream.client.stream.chunk_errors"
)

// --- Memory ---

const (
	// EventMemoryAppend marks a message appended to a conversation history
	EventMemoryAppend = "memory.append"

	// EventMemoryClear marks a history reset
	EventMemoryClear = "memory.clear"

	// AttrMemoryMessageRole is the role of the appended message
	AttrMemoryMessageRole = "memory.message.role"

	// AttrMemoryMessageLength is the content length of the appended message
	AttrMemoryMessageLength = "memory.message.length"

	// AttrMemoryTotalMessages is the history size after an append
	AttrMemoryTotalMessages = "memory.total_messages"
)
