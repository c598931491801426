package embed

import (
	"context"
	"fmt"
	"os"
)

// Config holds embedding provider configuration.
type Config struct {
	// Provider selects which embedder to use.
	// Values: "gemini", "openai", "mock"
	Provider string `yaml:"provider"`

	// APIKey for the selected provider. Falls back to the LLM provider's
	// key when the same vendor serves both.
	APIKey string `yaml:"api_key"`

	// Model overrides the provider's default embedding model.
	Model string `yaml:"model"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Provider: "gemini"}
}

// FromEnv overlays environment variables onto the config.
func (c Config) FromEnv() Config {
	if p := os.Getenv("STUDYLOOP_EMBED_PROVIDER"); p != "" {
		c.Provider = p
	}
	if k := os.Getenv("STUDYLOOP_EMBED_API_KEY"); k != "" {
		c.APIKey = k
	}
	if m := os.Getenv("STUDYLOOP_EMBED_MODEL"); m != "" {
		c.Model = m
	}
	return c
}

// NewEmbedder creates an Embedder from configuration.
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiEmbedder(ctx, cfg)
	case "openai":
		return NewOpenAIEmbedder(cfg)
	case "mock":
		return NewMockEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}
