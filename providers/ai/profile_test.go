package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatType(t *testing.T) {
	tests := []struct {
		input string
		want  FormatType
	}{
		{"openai", FormatOpenAI},
		{"claude", FormatClaude},
		{"gemini", FormatGemini},
		{"Claude", FormatClaude},
		{"  GEMINI ", FormatGemini},
		{"", FormatOpenAI},
		{"deepseek", FormatOpenAI},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFormatType(tt.input))
		})
	}
}

func TestProviderProfile_Format(t *testing.T) {
	assert.Equal(t, FormatClaude, ProviderProfile{FormatType: "CLAUDE"}.Format())
	assert.Equal(t, FormatOpenAI, ProviderProfile{}.Format())
}

func TestValidateEndpoint(t *testing.T) {
	parsed, err := ValidateEndpoint("https://api.openai.com/v1/chat/completions")
	require.NoError(t, err)
	assert.Equal(t, "api.openai.com", parsed.Host)

	for _, raw := range []string{"", "   ", "api.openai.com/v1", "ftp://example.com", "https://", "://bad"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ValidateEndpoint(raw)
			assert.Error(t, err)
		})
	}
}

func TestWithoutSystem(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "stray"},
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleSystem, Content: "late"},
		{Role: RoleUser, Content: "three"},
	}

	filtered := WithoutSystem(messages)

	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	}, filtered)
	assert.Len(t, messages, 5)
}
