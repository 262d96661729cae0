package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderOpenRouter  = "openrouter"
	ProviderOllama      = "ollama"
	ProviderCustom      = "custom"
)

var ErrMissingCredentials = errors.New("missing credentials")

// NewProvider creates the client for the configured provider, wrapped in
// retry and circuit-breaker handling.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (core.AIProvider, error) {
	c := cfg.Snapshot()

	log.FromCtx(ctx).Info().
		Str("provider", c.Provider).
		Str("model", c.Model).
		Msg("starting llm provider")

	inner, err := newClient(&c)
	if err != nil {
		return nil, err
	}

	return NewResilient(ctx, inner, ResilientConfig{
		Name:        c.Provider,
		MaxRetries:  c.MaxRetries,
		MaxFailures: c.BreakerMaxFailures,
		Timeout:     c.BreakerTimeout,
	}), nil
}

func newClient(c *config.LLMConfig) (core.AIProvider, error) {
	switch c.Provider {
	case ProviderHuggingFace, "":
		if c.HFToken == "" {
			return nil, fmt.Errorf("%w: HF_TOKEN is not set", ErrMissingCredentials)
		}
		return NewHuggingFace(c.HFBaseURL, c.HFToken, c.Model, c.Timeout), nil
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrMissingCredentials)
		}
		return NewOpenAI(c.OpenAIBaseURL, c.OpenAIAPIKey, c.Model, c.Timeout), nil
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrMissingCredentials)
		}
		return NewAnthropic(c.AnthropicBaseURL, c.AnthropicAPIKey, c.Model, c.Timeout), nil
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENROUTER_API_KEY is not set", ErrMissingCredentials)
		}
		return NewOpenRouter(c.OpenRouterAPIKey, c.Model, c.Timeout), nil
	case ProviderOllama:
		return NewOllama(c.OllamaBaseURL, c.OllamaAPIKey, c.Model, c.Timeout), nil
	case ProviderCustom:
		if c.CustomOpenAIBaseURL == "" {
			return nil, fmt.Errorf("CUSTOM_OPENAI_BASE_URL is not set")
		}
		return NewCustomOpenAI(c.CustomOpenAIBaseURL, c.CustomOpenAIAPIKey, c.Model, c.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", c.Provider)
	}
}
