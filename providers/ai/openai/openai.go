package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/zerocore/aistream/providers/ai"
)

const (
	displayName = "OpenAI Compatible"

	// doneLine is the literal completion sentinel line.
	doneLine = "data: [DONE]"

	// authHint replaces the generic message on 401 responses without a
	// structured error body.
	authHint = "API key is invalid or not set. Please check your API key in settings."
)

// OpenAIProvider implements [ai.Provider] for OpenAI-compatible endpoints.
// The zero value is ready to use; it holds no state.
type OpenAIProvider struct{}

// Ensure OpenAIProvider implements ai.Provider
var _ ai.Provider = (*OpenAIProvider)(nil)

// New returns an OpenAIProvider.
func New() *OpenAIProvider {
	return &OpenAIProvider{}
}

// FormatType returns [ai.FormatOpenAI].
func (p *OpenAIProvider) FormatType() ai.FormatType {
	return ai.FormatOpenAI
}

// DisplayName returns "OpenAI Compatible".
func (p *OpenAIProvider) DisplayName() string {
	return displayName
}

// BuildRequest builds a Chat Completions POST to profile.APIURL. A non-empty
// systemPrompt becomes a "system" message at index 0; conversation entries
// follow unchanged and in order.
func (p *OpenAIProvider) BuildRequest(profile ai.ProviderProfile, messages []ai.Message, systemPrompt string, stream bool) (*ai.WireRequest, error) {
	if _, err := ai.ValidateEndpoint(profile.APIURL); err != nil {
		return nil, ai.NewBuildError(ai.FormatOpenAI, err)
	}

	body := chatRequest{
		Model:    profile.ModelName,
		Messages: make([]chatMessage, 0, len(messages)+1),
		Stream:   stream,
	}
	if systemPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: string(ai.RoleSystem), Content: systemPrompt})
	}
	for _, message := range messages {
		body.Messages = append(body.Messages, chatMessage{Role: string(message.Role), Content: message.Content})
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, ai.NewBuildError(ai.FormatOpenAI, fmt.Errorf("error marshaling body: %w", err))
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+profile.APIKey)
	header.Set("Content-Type", "application/json")
	if stream {
		header.Set("Accept", "text/event-stream")
	}

	return &ai.WireRequest{
		Method: http.MethodPost,
		URL:    profile.APIURL,
		Header: header,
		Body:   jsonBody,
	}, nil
}

// ParseResponse returns choices[0].message.content.
func (p *OpenAIProvider) ParseResponse(body string) (string, error) {
	var response chatResponse
	if err := json.Unmarshal([]byte(body), &response); err != nil {
		return "", ai.NewResponseParseError(ai.FormatOpenAI, "OpenAI", err)
	}
	if len(response.Choices) == 0 {
		return "", ai.NewResponseParseError(ai.FormatOpenAI, "OpenAI", errors.New("response has no choices"))
	}
	content := response.Choices[0].Message.Content
	if content == nil {
		return "", ai.NewResponseParseError(ai.FormatOpenAI, "OpenAI", errors.New("choices[0].message.content is missing"))
	}
	return *content, nil
}

// ParseStreamChunk returns choices[0].delta.content. Chunks without choices,
// without a delta, or with a null/empty content (role announcements, finish
// chunks, usage chunks) carry no delta.
func (p *OpenAIProvider) ParseStreamChunk(line string) (string, bool, error) {
	payload, ok := ai.DataPayload(line)
	if !ok {
		return "", false, nil
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return "", false, ai.NewChunkParseError(ai.FormatOpenAI, "OpenAI", err)
	}
	if len(chunk.Choices) == 0 {
		return "", false, nil
	}
	delta := chunk.Choices[0].Delta
	if delta == nil || delta.Content == nil || *delta.Content == "" {
		return "", false, nil
	}
	return *delta.Content, true, nil
}

// IsStreamComplete reports whether line is "data: [DONE]", ignoring
// surrounding whitespace.
func (p *OpenAIProvider) IsStreamComplete(line string) bool {
	return strings.TrimSpace(line) == doneLine
}

// ParseError prefers error.message from the body, then the 401 hint, then
// "Error <status>: <body>".
func (p *OpenAIProvider) ParseError(statusCode int, body string) string {
	if message, ok := ai.ErrorMessage(body); ok {
		return message
	}
	if statusCode == http.StatusUnauthorized {
		return authHint
	}
	return fmt.Sprintf("Error %d: %s", statusCode, body)
}
