package ai

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// FormatType identifies the wire format family a profile speaks and therefore
// which [Provider] implementation handles it.
type FormatType string

const (
	// FormatOpenAI covers OpenAI and every OpenAI-compatible endpoint
	// (DeepSeek, Groq, Ollama, vLLM, ...). It is also the fallback format.
	FormatOpenAI FormatType = "openai"
	// FormatClaude is Anthropic's Messages API.
	FormatClaude FormatType = "claude"
	// FormatGemini is Google's generateContent API.
	FormatGemini FormatType = "gemini"
)

// ParseFormatType maps a configured identifier to a FormatType. Matching is
// case-insensitive; empty or unknown identifiers resolve to [FormatOpenAI].
func ParseFormatType(s string) FormatType {
	switch FormatType(strings.ToLower(strings.TrimSpace(s))) {
	case FormatClaude:
		return FormatClaude
	case FormatGemini:
		return FormatGemini
	default:
		return FormatOpenAI
	}
}

// String returns the identifier as persisted in profile storage.
func (f FormatType) String() string {
	return string(f)
}

// ProviderProfile is the configuration record of one vendor endpoint.
// Profiles are read-only input: nothing in this module mutates one, and a
// profile must not change while a request built from it is in flight.
//
// Keeping at most one profile marked IsDefault is the responsibility of
// whatever stores profiles.
type ProviderProfile struct {
	// ID is an opaque identity, stable across edits of the other fields.
	ID string `json:"id" yaml:"id" toml:"id" mapstructure:"id"`
	// Name is the display label.
	Name string `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	// FormatType selects the Provider implementation.
	FormatType FormatType `json:"format_type" yaml:"format_type" toml:"format_type" mapstructure:"format_type"`
	// APIURL is the full endpoint URL for OpenAI-compatible and Claude
	// profiles, and the API base URL for Gemini profiles.
	APIURL    string `json:"api_url" yaml:"api_url" toml:"api_url" mapstructure:"api_url"`
	APIKey    string `json:"api_key" yaml:"api_key" toml:"api_key" mapstructure:"api_key"`
	ModelName string `json:"model_name" yaml:"model_name" toml:"model_name" mapstructure:"model_name"`
	IsDefault bool   `json:"is_default" yaml:"is_default" toml:"is_default" mapstructure:"is_default"`
}

// Format returns the profile's format type normalised through [ParseFormatType].
func (p ProviderProfile) Format() FormatType {
	return ParseFormatType(string(p.FormatType))
}

// ValidateEndpoint checks that raw is an absolute http(s) URL with a host.
// Providers call it while building requests so a malformed profile fails
// locally instead of at the transport.
func ValidateEndpoint(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("API URL is not set")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: missing host", raw)
	}
	return parsed, nil
}
