// Package anthropic implements [ai.Provider] for Anthropic's Messages API,
// registered under the "claude" format identifier.
//
// Requests authenticate with the x-api-key header and pin the wire format
// with anthropic-version. The system prompt is the top-level "system" field
// and never appears in the message array. Streams follow the Messages SSE
// lifecycle:
//
//	message_start → content_block_start → content_block_delta(s) →
//	content_block_stop → message_delta → message_stop
//
// Only content_block_delta payloads carry text; message_stop is the
// completion sentinel and an "error" payload is reported through
// [ai.StreamErrorDetector].
package anthropic
