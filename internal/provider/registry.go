package provider

import (
	"context"
	"log"
)

// Credentials carries the provider keys read once at startup. Absence of a
// key makes that provider ineligible without any network I/O.
type Credentials struct {
	GeminiAPIKey     string
	DeepSeekAPIKey   string
	OpenRouterAPIKey string
	OpenRouterModel  string
	GeminiModel      string
}

// Registry is the immutable, ordered provider list for the process. It is
// built once and shared by reference across requests.
type Registry struct {
	providers []Provider
}

// NewRegistry constructs providers in fixed priority order: Gemini, then
// DeepSeek, then OpenRouter. Providers without credentials are left out
// entirely rather than registered-and-skipped.
func NewRegistry(ctx context.Context, creds Credentials) *Registry {
	var providers []Provider

	if creds.GeminiAPIKey != "" {
		g, err := NewGeminiProvider(ctx, creds.GeminiAPIKey, creds.GeminiModel)
		if err != nil {
			log.Printf("gemini client init failed, provider disabled: %v", err)
		} else {
			providers = append(providers, g)
		}
	}
	if creds.DeepSeekAPIKey != "" {
		providers = append(providers, NewDeepSeekProvider(creds.DeepSeekAPIKey))
	}
	if creds.OpenRouterAPIKey != "" {
		providers = append(providers, NewOpenRouterProvider(creds.OpenRouterAPIKey, creds.OpenRouterModel))
	}

	return &Registry{providers: providers}
}

// NewStaticRegistry wraps an explicit provider list, in the given order.
func NewStaticRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Providers returns the eligible providers in priority order.
func (r *Registry) Providers() []Provider { return r.providers }

// Empty reports whether no provider has credentials at all.
func (r *Registry) Empty() bool { return len(r.providers) == 0 }
