package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubProvider is a Provider that only knows its identity.
type stubProvider struct {
	format FormatType
}

func (s stubProvider) FormatType() FormatType { return s.format }
func (s stubProvider) DisplayName() string    { return string(s.format) }
func (s stubProvider) BuildRequest(ProviderProfile, []Message, string, bool) (*WireRequest, error) {
	return &WireRequest{}, nil
}
func (s stubProvider) ParseResponse(string) (string, error)          { return "", nil }
func (s stubProvider) ParseStreamChunk(string) (string, bool, error) { return "", false, nil }
func (s stubProvider) IsStreamComplete(string) bool                  { return false }
func (s stubProvider) ParseError(int, string) string                 { return "" }

func TestRegistry_Lookup(t *testing.T) {
	openai := stubProvider{format: FormatOpenAI}
	claude := stubProvider{format: FormatClaude}
	gemini := stubProvider{format: FormatGemini}
	registry := NewRegistry(openai, claude, gemini)

	assert.Equal(t, claude, registry.Lookup("claude"))
	assert.Equal(t, gemini, registry.Lookup("Gemini"))
	assert.Equal(t, openai, registry.Lookup("openai"))
	assert.Equal(t, openai, registry.Lookup(""))
	assert.Equal(t, openai, registry.Lookup("mistral"))
}

func TestRegistry_ForProfile(t *testing.T) {
	registry := NewRegistry(stubProvider{format: FormatOpenAI}, stubProvider{format: FormatClaude})

	assert.Equal(t, FormatClaude, registry.ForProfile(ProviderProfile{FormatType: FormatClaude}).FormatType())
	// gemini is not registered here, so the fallback answers
	assert.Equal(t, FormatOpenAI, registry.ForProfile(ProviderProfile{FormatType: FormatGemini}).FormatType())
}

func TestRegistry_ProvidersOrderAndDedup(t *testing.T) {
	registry := NewRegistry(
		stubProvider{format: FormatOpenAI},
		stubProvider{format: FormatClaude},
		stubProvider{format: FormatOpenAI},
		stubProvider{format: FormatGemini},
	)

	var formats []FormatType
	for _, provider := range registry.Providers() {
		formats = append(formats, provider.FormatType())
	}
	assert.Equal(t, []FormatType{FormatOpenAI, FormatClaude, FormatGemini}, formats)

	listed := registry.Providers()
	listed[0] = nil
	assert.NotNil(t, registry.Providers()[0])
}
