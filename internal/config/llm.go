package config

import (
	"context"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"huggingface"`
	Model    string `env:"MODEL_NAME" envDefault:"Qwen/Qwen2.5-72B-Instruct"`

	HFToken             string `env:"HF_TOKEN"`
	HFBaseURL           string `env:"HF_BASE_URL" envDefault:"https://router.huggingface.co"`
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL       string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1/"`
	AnthropicAPIKey     string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL    string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`

	MaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"1000"`
	Temperature float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	MaxRetries         int           `env:"LLM_MAX_RETRIES" envDefault:"2"`
	BreakerMaxFailures uint32        `env:"LLM_BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerTimeout     time.Duration `env:"LLM_BREAKER_TIMEOUT" envDefault:"30s"`

	mu sync.RWMutex
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

// ParseLLMConfig reads the LLM settings from vars instead of the process environment.
func ParseLLMConfig(vars map[string]string) (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.ParseWithOptions(c, env.Options{Environment: vars}); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *LLMConfig) GetProvider() string {
	return c.Provider
}

func (c *LLMConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel changes the model for the rest of the process. It is not persisted.
func (c *LLMConfig) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Model = model
}

// Snapshot returns a copy safe to read without the lock.
func (c *LLMConfig) Snapshot() LLMConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return LLMConfig{
		Provider:            c.Provider,
		Model:               c.Model,
		HFToken:             c.HFToken,
		HFBaseURL:           c.HFBaseURL,
		OpenAIAPIKey:        c.OpenAIAPIKey,
		OpenAIBaseURL:       c.OpenAIBaseURL,
		AnthropicAPIKey:     c.AnthropicAPIKey,
		AnthropicBaseURL:    c.AnthropicBaseURL,
		OpenRouterAPIKey:    c.OpenRouterAPIKey,
		OllamaBaseURL:       c.OllamaBaseURL,
		OllamaAPIKey:        c.OllamaAPIKey,
		CustomOpenAIBaseURL: c.CustomOpenAIBaseURL,
		CustomOpenAIAPIKey:  c.CustomOpenAIAPIKey,
		MaxTokens:           c.MaxTokens,
		Temperature:         c.Temperature,
		Timeout:             c.Timeout,
		MaxRetries:          c.MaxRetries,
		BreakerMaxFailures:  c.BreakerMaxFailures,
		BreakerTimeout:      c.BreakerTimeout,
	}
}
