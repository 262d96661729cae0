package llm

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/retry"
)

type providerFunc func(ctx context.Context, req core.ChatRequest) (core.Message, error)

func (f providerFunc) Chat(ctx context.Context, req core.ChatRequest) (core.Message, error) {
	return f(ctx, req)
}

var fastRetry = &retry.Config{
	BackoffFactor: 1,
	InitialDelay:  time.Millisecond,
	MaxDelay:      2 * time.Millisecond,
}

// failing returns the given errors in order, then succeeds.
func failing(calls *atomic.Int32, errs ...error) providerFunc {
	return func(ctx context.Context, req core.ChatRequest) (core.Message, error) {
		n := int(calls.Add(1)) - 1
		if n < len(errs) {
			return core.Message{}, errs[n]
		}
		return core.Message{Role: core.RoleAssistant, Content: "ok"}, nil
	}
}

func TestResilient_Retries(t *testing.T) {
	tests := []struct {
		name       string
		errs       []error
		maxRetries int
		wantCalls  int32
		wantErr    bool
	}{
		{
			name:       "transient then success",
			errs:       []error{&StatusError{Code: http.StatusServiceUnavailable}},
			maxRetries: 2,
			wantCalls:  2,
		},
		{
			name:       "rate limit retried",
			errs:       []error{&StatusError{Code: http.StatusTooManyRequests}, &StatusError{Code: http.StatusTooManyRequests}},
			maxRetries: 2,
			wantCalls:  3,
		},
		{
			name:       "network error retried",
			errs:       []error{errors.New("connection reset")},
			maxRetries: 1,
			wantCalls:  2,
		},
		{
			name:       "client error not retried",
			errs:       []error{&StatusError{Code: http.StatusBadRequest, Body: "bad"}},
			maxRetries: 3,
			wantCalls:  1,
			wantErr:    true,
		},
		{
			name:       "retries exhausted",
			errs:       []error{&StatusError{Code: 500}, &StatusError{Code: 500}, &StatusError{Code: 500}},
			maxRetries: 1,
			wantCalls:  2,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			r := NewResilient(context.Background(), failing(&calls, tt.errs...), ResilientConfig{
				Name:        "test",
				MaxRetries:  tt.maxRetries,
				MaxFailures: 10,
				Retry:       fastRetry,
			})

			msg, err := r.Chat(context.Background(), core.ChatRequest{})
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ok", msg.Content)
		})
	}
}

func TestResilient_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	inner := providerFunc(func(ctx context.Context, req core.ChatRequest) (core.Message, error) {
		calls.Add(1)
		return core.Message{}, &StatusError{Code: http.StatusInternalServerError}
	})

	r := NewResilient(context.Background(), inner, ResilientConfig{
		Name:        "flaky",
		MaxFailures: 2,
		Timeout:     time.Minute,
		Retry:       fastRetry,
	})

	for i := 0; i < 2; i++ {
		_, err := r.Chat(context.Background(), core.ChatRequest{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, r.State())

	_, err := r.Chat(context.Background(), core.ChatRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, int32(2), calls.Load())
}

func TestResilient_ClientErrorsKeepBreakerClosed(t *testing.T) {
	inner := providerFunc(func(ctx context.Context, req core.ChatRequest) (core.Message, error) {
		return core.Message{}, &StatusError{Code: http.StatusBadRequest}
	})

	r := NewResilient(context.Background(), inner, ResilientConfig{MaxFailures: 1, Retry: fastRetry})
	for i := 0; i < 3; i++ {
		_, err := r.Chat(context.Background(), core.ChatRequest{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, r.State())
}

func TestResilient_CanceledContext(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	inner := providerFunc(func(ctx context.Context, req core.ChatRequest) (core.Message, error) {
		calls.Add(1)
		cancel()
		return core.Message{}, ctx.Err()
	})

	r := NewResilient(context.Background(), inner, ResilientConfig{MaxRetries: 5, Retry: fastRetry})
	_, err := r.Chat(ctx, core.ChatRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDynamicProvider_SetModel(t *testing.T) {
	cfg := &config.LLMConfig{Provider: "huggingface", Model: "Qwen/Qwen2.5-72B-Instruct"}

	build := func(ctx context.Context, c *config.LLMConfig) (core.AIProvider, error) {
		model := c.GetModel()
		if model == "roto" {
			return nil, errors.New("unknown model")
		}
		return providerFunc(func(ctx context.Context, req core.ChatRequest) (core.Message, error) {
			return core.Message{Role: core.RoleAssistant, Content: model}, nil
		}), nil
	}

	d, err := newDynamicProvider(context.Background(), cfg, build)
	require.NoError(t, err)

	msg, err := d.Chat(context.Background(), core.ChatRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Qwen/Qwen2.5-72B-Instruct", msg.Content)

	require.NoError(t, d.SetModel(context.Background(), "meta-llama/Llama-3.3-70B-Instruct"))
	assert.Equal(t, "meta-llama/Llama-3.3-70B-Instruct", d.GetModel())
	msg, err = d.Chat(context.Background(), core.ChatRequest{})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/Llama-3.3-70B-Instruct", msg.Content)

	require.Error(t, d.SetModel(context.Background(), "roto"))
	assert.Equal(t, "meta-llama/Llama-3.3-70B-Instruct", d.GetModel())

	_, err = d.Models(context.Background())
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LLMConfig
		want    any
		wantErr error
	}{
		{name: "huggingface", cfg: &config.LLMConfig{Provider: "huggingface", HFToken: "hf"}, want: &HuggingFace{}},
		{name: "default provider", cfg: &config.LLMConfig{HFToken: "hf"}, want: &HuggingFace{}},
		{name: "openai", cfg: &config.LLMConfig{Provider: "openai", OpenAIAPIKey: "sk"}, want: &OpenAI{}},
		{name: "anthropic", cfg: &config.LLMConfig{Provider: "anthropic", AnthropicAPIKey: "sk"}, want: &Anthropic{}},
		{name: "openrouter", cfg: &config.LLMConfig{Provider: "openrouter", OpenRouterAPIKey: "or"}, want: &OpenRouter{}},
		{name: "ollama", cfg: &config.LLMConfig{Provider: "ollama", OllamaBaseURL: "http://localhost:11434"}, want: &Ollama{}},
		{name: "custom", cfg: &config.LLMConfig{Provider: "custom", CustomOpenAIBaseURL: "http://llm.local"}, want: &CustomOpenAI{}},
		{name: "missing hf token", cfg: &config.LLMConfig{Provider: "huggingface"}, wantErr: ErrMissingCredentials},
		{name: "missing openai key", cfg: &config.LLMConfig{Provider: "openai"}, wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newClient(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}

	_, err := newClient(&config.LLMConfig{Provider: "gemini"})
	assert.EqualError(t, err, "unknown llm provider: gemini")
}

func TestNewProvider_WrapsResilient(t *testing.T) {
	p, err := NewProvider(context.Background(), &config.LLMConfig{Provider: "huggingface", HFToken: "hf", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &Resilient{}, p)
}
