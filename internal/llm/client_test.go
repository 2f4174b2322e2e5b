package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProvider(t *testing.T) {
	for _, name := range []string{"gemini", "openai", "anthropic", "ollama"} {
		p, err := ValidateProvider(name)
		require.NoError(t, err, name)
		assert.Equal(t, Provider(name), p)
	}
	_, err := ValidateProvider("cohere")
	assert.Error(t, err)
}

func TestDefaultModelForProvider(t *testing.T) {
	assert.Equal(t, "gemini-1.5-flash", DefaultModelForProvider(ProviderGemini))
	assert.Equal(t, "", DefaultModelForProvider("unknown"))
}

func TestNewChatModelRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	for _, p := range []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic} {
		_, err := NewChatModel(ctx, Config{Provider: p})
		assert.Error(t, err, string(p))
	}
	_, err := NewChatModel(ctx, Config{Provider: "bogus"})
	assert.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	assert.Equal(t, "configured", ResolveAPIKey(ProviderGemini, "configured"))

	t.Setenv("GEMINI_API_KEY", "from-env")
	assert.Equal(t, "from-env", ResolveAPIKey(ProviderGemini, ""))

	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-env")
	assert.Equal(t, "google-env", ResolveAPIKey(ProviderGemini, ""))

	t.Setenv("OPENAI_API_KEY", "openai-env")
	assert.Equal(t, "openai-env", ResolveAPIKey(ProviderOpenAI, ""))
}
