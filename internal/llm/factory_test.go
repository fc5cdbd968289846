package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebward/fueltally/internal/common"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "anthropic",
			config: Config{Provider: "anthropic", APIKey: "test-key"},
		},
		{
			name:   "openai",
			config: Config{Provider: "openai", APIKey: "test-key"},
		},
		{
			name:   "provider is case-insensitive",
			config: Config{Provider: "Anthropic", APIKey: "test-key"},
		},
		{
			name:    "unsupported provider",
			config:  Config{Provider: "gemini", APIKey: "test-key"},
			wantErr: "unsupported LLM provider",
		},
		{
			name:    "missing API key",
			config:  Config{Provider: "anthropic"},
			wantErr: "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClientMissingAPIKey(t *testing.T) {
	for _, provider := range []string{"anthropic", "openai"} {
		_, err := NewClient(Config{Provider: provider})
		assert.ErrorIs(t, err, common.ErrMissingConfig, provider)
	}
}

func TestNewAnthropicClientDefaults(t *testing.T) {
	client, err := newAnthropicClient(Config{APIKey: "test-key"})
	require.NoError(t, err)

	ac, ok := client.(*anthropicClient)
	require.True(t, ok)
	assert.Equal(t, "claude-3-5-sonnet-20241022", ac.model)
	assert.Equal(t, 4096, ac.maxTokens)
}

func TestNewOpenAIClientDefaults(t *testing.T) {
	client, err := newOpenAIClient(Config{APIKey: "test-key"})
	require.NoError(t, err)

	oc, ok := client.(*openaiClient)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", oc.model)
}
