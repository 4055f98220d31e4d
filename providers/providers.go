// Package providers builds the provider registry with every supported vendor
// family. The registry is constructed explicitly, once, by whoever wires the
// application; there is no package-level singleton.
//
//	registry := providers.NewRegistry()
//	provider := registry.ForProfile(profile)
package providers

import (
	"github.com/zerocore/aistream/providers/ai"
	"github.com/zerocore/aistream/providers/ai/anthropic"
	"github.com/zerocore/aistream/providers/ai/gemini"
	"github.com/zerocore/aistream/providers/ai/openai"
)

// NewRegistry returns a registry holding the OpenAI-compatible, Claude and
// Gemini providers, with OpenAI-compatible as the fallback for unknown format
// identifiers.
func NewRegistry() *ai.Registry {
	return ai.NewRegistry(openai.New(), anthropic.New(), gemini.New())
}
