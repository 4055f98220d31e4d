package anthropic

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/zerocore/aistream/providers/ai"
)

const (
	displayName = "Anthropic Claude"

	// anthropicVersion is the required anthropic-version header value.
	// Anthropic uses this to version-lock response formats independently of the URL.
	anthropicVersion = "2023-06-01"

	// maxTokens is sent on every request; the Messages API requires it.
	maxTokens = 4096

	eventContentBlockDelta = "content_block_delta"
	eventMessageStop       = "message_stop"
	eventError             = "error"

	authHint = "Claude API key is invalid. Please check your x-api-key in settings."
)

// AnthropicProvider implements [ai.Provider] for the Messages API.
type AnthropicProvider struct{}

// Ensure AnthropicProvider implements ai.Provider and ai.StreamErrorDetector
var (
	_ ai.Provider            = (*AnthropicProvider)(nil)
	_ ai.StreamErrorDetector = (*AnthropicProvider)(nil)
)

// New returns an AnthropicProvider.
func New() *AnthropicProvider {
	return &AnthropicProvider{}
}

// FormatType returns [ai.FormatClaude].
func (p *AnthropicProvider) FormatType() ai.FormatType {
	return ai.FormatClaude
}

// DisplayName returns "Anthropic Claude".
func (p *AnthropicProvider) DisplayName() string {
	return displayName
}

// buildHeaders constructs the HTTP headers required for every Anthropic request.
// x-api-key carries the credential (Anthropic does not use Bearer tokens) and
// anthropic-version pins the wire format.
func buildHeaders(apiKey string, stream bool) http.Header {
	header := http.Header{}
	header.Set("x-api-key", apiKey)
	header.Set("anthropic-version", anthropicVersion)
	header.Set("Content-Type", "application/json")
	if stream {
		header.Set("Accept", "text/event-stream")
	}
	return header
}

// BuildRequest builds a Messages API POST to profile.APIURL. System-role
// entries are dropped from the conversation; systemPrompt, when non-empty,
// becomes the top-level "system" field.
func (p *AnthropicProvider) BuildRequest(profile ai.ProviderProfile, messages []ai.Message, systemPrompt string, stream bool) (*ai.WireRequest, error) {
	if _, err := ai.ValidateEndpoint(profile.APIURL); err != nil {
		return nil, ai.NewBuildError(ai.FormatClaude, err)
	}

	conversation := ai.WithoutSystem(messages)
	body := messagesRequest{
		Model:     profile.ModelName,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  make([]message, 0, len(conversation)),
		Stream:    stream,
	}
	for _, entry := range conversation {
		body.Messages = append(body.Messages, message{Role: string(entry.Role), Content: entry.Content})
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, ai.NewBuildError(ai.FormatClaude, fmt.Errorf("error marshaling body: %w", err))
	}

	return &ai.WireRequest{
		Method: http.MethodPost,
		URL:    profile.APIURL,
		Header: buildHeaders(profile.APIKey, stream),
		Body:   jsonBody,
	}, nil
}

// ParseResponse concatenates the text of every "text" content block, in order.
func (p *AnthropicProvider) ParseResponse(body string) (string, error) {
	var response messagesResponse
	if err := json.Unmarshal([]byte(body), &response); err != nil {
		return "", ai.NewResponseParseError(ai.FormatClaude, "Claude", err)
	}
	if response.Content == nil {
		return "", ai.NewResponseParseError(ai.FormatClaude, "Claude", errors.New("response has no content array"))
	}

	var result strings.Builder
	for index, block := range *response.Content {
		if block.Type == nil {
			return "", ai.NewResponseParseError(ai.FormatClaude, "Claude", fmt.Errorf("content[%d] has no type", index))
		}
		if *block.Type == "text" {
			result.WriteString(block.Text)
		}
	}
	return result.String(), nil
}

// ParseStreamChunk returns delta.text for content_block_delta payloads. Every
// other event (message_start, content_block_start, ping, message_delta, ...)
// and deltas without text, such as input_json_delta, carry no content.
func (p *AnthropicProvider) ParseStreamChunk(line string) (string, bool, error) {
	payload, ok := ai.DataPayload(line)
	if !ok {
		return "", false, nil
	}

	var event streamEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return "", false, ai.NewChunkParseError(ai.FormatClaude, "Claude", err)
	}
	if event.Type != eventContentBlockDelta || event.Delta == nil || event.Delta.Text == nil {
		return "", false, nil
	}
	if *event.Delta.Text == "" {
		return "", false, nil
	}
	return *event.Delta.Text, true, nil
}

// IsStreamComplete reports whether line carries a message_stop payload.
func (p *AnthropicProvider) IsStreamComplete(line string) bool {
	return payloadType(line) == eventMessageStop
}

// StreamError reports an in-band "error" event. The Messages API emits one
// when it fails after the 200 status and headers were already sent, e.g.
// overloaded_error.
func (p *AnthropicProvider) StreamError(line string) (string, bool) {
	payload, ok := ai.DataPayload(line)
	if !ok || !gjson.Valid(payload) {
		return "", false
	}
	if gjson.Get(payload, "type").String() != eventError {
		return "", false
	}
	if message := gjson.Get(payload, "error.message"); message.Exists() {
		return "Claude stream error: " + message.String(), true
	}
	return "Claude stream error: unknown stream error", true
}

// ParseError prefers error.message from the body, then the 401 hint, then
// "Claude Error <status>: <body>".
func (p *AnthropicProvider) ParseError(statusCode int, body string) string {
	if message, ok := ai.ErrorMessage(body); ok {
		return message
	}
	if statusCode == http.StatusUnauthorized {
		return authHint
	}
	return fmt.Sprintf("Claude Error %d: %s", statusCode, body)
}

// payloadType returns the "type" field of a data line's JSON payload, or ""
// when the line is not a decodable payload.
func payloadType(line string) string {
	payload, ok := ai.DataPayload(line)
	if !ok || !gjson.Valid(payload) {
		return ""
	}
	return gjson.Get(payload, "type").String()
}
