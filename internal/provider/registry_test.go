package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryNoCredentials(t *testing.T) {
	r := NewRegistry(context.Background(), Credentials{})
	assert.True(t, r.Empty())
}

func TestNewRegistryKeepsPriorityOrder(t *testing.T) {
	r := NewRegistry(context.Background(), Credentials{
		DeepSeekAPIKey:   "sk-test",
		OpenRouterAPIKey: "or-test",
	})
	providers := r.Providers()
	require.Len(t, providers, 2)
	assert.Equal(t, "DeepSeek:deepseek-chat", providers[0].Name())
	assert.Equal(t, "OpenRouter:deepseek/deepseek-chat", providers[1].Name())
}

func TestNewRegistrySkipsMissingCredential(t *testing.T) {
	r := NewRegistry(context.Background(), Credentials{DeepSeekAPIKey: "sk-test"})
	providers := r.Providers()
	require.Len(t, providers, 1)
	assert.Equal(t, "DeepSeek:deepseek-chat", providers[0].Name())
}
