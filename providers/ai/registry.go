package ai

// Registry maps format identifiers to providers. It is built once, never
// mutated afterwards and safe for concurrent use.
type Registry struct {
	providers map[FormatType]Provider
	ordered   []Provider
	fallback  Provider
}

// NewRegistry registers providers under their own FormatType. fallback
// answers every lookup that matches nothing; it is registered too.
func NewRegistry(fallback Provider, providers ...Provider) *Registry {
	registry := &Registry{
		providers: make(map[FormatType]Provider, len(providers)+1),
		fallback:  fallback,
	}
	for _, provider := range append([]Provider{fallback}, providers...) {
		if _, exists := registry.providers[provider.FormatType()]; exists {
			continue
		}
		registry.providers[provider.FormatType()] = provider
		registry.ordered = append(registry.ordered, provider)
	}
	return registry
}

// Lookup returns the provider for formatType. Empty or unknown identifiers
// resolve to the fallback provider; Lookup never fails.
func (r *Registry) Lookup(formatType string) Provider {
	if provider, ok := r.providers[ParseFormatType(formatType)]; ok {
		return provider
	}
	return r.fallback
}

// ForProfile returns the provider that handles profile.
func (r *Registry) ForProfile(profile ProviderProfile) Provider {
	return r.Lookup(string(profile.FormatType))
}

// Providers lists the registered providers in registration order, fallback first.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.ordered))
	copy(out, r.ordered)
	return out
}
