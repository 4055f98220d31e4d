package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerocore/aistream/providers/ai"
)

func testProfile() ai.ProviderProfile {
	return ai.ProviderProfile{
		ID:         "1",
		Name:       "OpenAI",
		FormatType: ai.FormatOpenAI,
		APIURL:     "https://api.openai.com/v1/chat/completions",
		APIKey:     "sk-test",
		ModelName:  "gpt-4o-mini",
	}
}

func TestBuildRequest_SystemPromptFirst(t *testing.T) {
	messages := []ai.Message{
		{Role: ai.RoleUser, Content: "Hi"},
		{Role: ai.RoleAssistant, Content: "Hello"},
		{Role: ai.RoleUser, Content: "How are you?"},
	}

	wire, err := New().BuildRequest(testProfile(), messages, "You are terse.", true)
	require.NoError(t, err)

	assert.Equal(t, "POST", wire.Method)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", wire.URL)
	assert.Equal(t, "Bearer sk-test", wire.Header.Get("Authorization"))
	assert.Equal(t, "application/json", wire.Header.Get("Content-Type"))
	assert.Equal(t, "text/event-stream", wire.Header.Get("Accept"))

	var body chatRequest
	require.NoError(t, json.Unmarshal(wire.Body, &body))
	assert.Equal(t, "gpt-4o-mini", body.Model)
	assert.True(t, body.Stream)
	assert.Equal(t, []chatMessage{
		{Role: "system", Content: "You are terse."},
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello"},
		{Role: "user", Content: "How are you?"},
	}, body.Messages)
}

func TestBuildRequest_NoSystemPrompt(t *testing.T) {
	messages := []ai.Message{{Role: ai.RoleUser, Content: "Hi"}}

	wire, err := New().BuildRequest(testProfile(), messages, "", false)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(wire.Body, &raw))
	assert.Equal(t, false, raw["stream"])
	assert.Len(t, raw["messages"], 1)
	assert.Empty(t, wire.Header.Get("Accept"))
}

func TestBuildRequest_ForwardsSystemEntriesUnchanged(t *testing.T) {
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: "inline"},
		{Role: ai.RoleUser, Content: "Hi"},
	}

	wire, err := New().BuildRequest(testProfile(), messages, "", true)
	require.NoError(t, err)

	var body chatRequest
	require.NoError(t, json.Unmarshal(wire.Body, &body))
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "inline", body.Messages[0].Content)
}

func TestBuildRequest_Deterministic(t *testing.T) {
	messages := []ai.Message{{Role: ai.RoleUser, Content: "Hi"}}

	first, err := New().BuildRequest(testProfile(), messages, "sys", true)
	require.NoError(t, err)
	second, err := New().BuildRequest(testProfile(), messages, "sys", true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildRequest_InvalidURL(t *testing.T) {
	profile := testProfile()
	profile.APIURL = "not a url"

	_, err := New().BuildRequest(profile, nil, "", true)

	assert.ErrorIs(t, err, ai.ErrBuild)
}

func TestParseStreamChunk(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		delta string
		ok    bool
	}{
		{"content", `data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"Hello"},"finish_reason":null}]}`, "Hello", true},
		{"role only", `data: {"choices":[{"index":0,"delta":{"role":"assistant","content":""},"finish_reason":null}]}`, "", false},
		{"null content", `data: {"choices":[{"index":0,"delta":{"content":null}}]}`, "", false},
		{"finish", `data: {"choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`, "", false},
		{"usage only", `data: {"choices":[],"usage":{"prompt_tokens":5,"completion_tokens":2}}`, "", false},
		{"no delta", `data: {"choices":[{"index":0}]}`, "", false},
		{"sentinel", "data: [DONE]", "", false},
		{"empty line", "", "", false},
		{"comment", ": OPENROUTER PROCESSING", "", false},
		{"no prefix", `{"choices":[{"delta":{"content":"x"}}]}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, ok, err := New().ParseStreamChunk(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.delta, delta)
		})
	}
}

func TestParseStreamChunk_Malformed(t *testing.T) {
	_, ok, err := New().ParseStreamChunk(`data: {"choices":[{"delta":{"content":"Hel`)

	assert.False(t, ok)
	assert.ErrorIs(t, err, ai.ErrChunkParse)
	assert.Contains(t, err.Error(), "Failed to parse OpenAI stream chunk")
}

func TestIsStreamComplete(t *testing.T) {
	provider := New()

	assert.True(t, provider.IsStreamComplete("data: [DONE]"))
	assert.True(t, provider.IsStreamComplete("  data: [DONE]\r"))
	assert.False(t, provider.IsStreamComplete("data: [DONE] extra"))
	assert.False(t, provider.IsStreamComplete(`data: {"choices":[]}`))
	assert.False(t, provider.IsStreamComplete(""))
}

func TestParseResponse(t *testing.T) {
	text, err := New().ParseResponse(`{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"Hello there"},"finish_reason":"stop"}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)

	for _, body := range []string{`{"choices":[]}`, `{"choices":[{"message":{"content":null}}]}`, "oops"} {
		_, err := New().ParseResponse(body)
		assert.ErrorIs(t, err, ai.ErrResponseParse, body)
	}
}

func TestParseError(t *testing.T) {
	provider := New()

	assert.Equal(t, "Incorrect API key provided: sk-test.",
		provider.ParseError(401, `{"error":{"message":"Incorrect API key provided: sk-test.","type":"invalid_request_error"}}`))
	assert.Equal(t, authHint, provider.ParseError(401, ""))
	assert.Equal(t, "Error 502: Bad Gateway", provider.ParseError(502, "Bad Gateway"))
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, ai.FormatOpenAI, New().FormatType())
	assert.Equal(t, "OpenAI Compatible", New().DisplayName())
}
