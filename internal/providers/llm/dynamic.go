package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

// DynamicProvider lets the model be switched while a conversation is running.
type DynamicProvider struct {
	config  *config.LLMConfig
	build   func(ctx context.Context, cfg *config.LLMConfig) (core.AIProvider, error)
	current atomic.Value
	mu      sync.Mutex
}

func NewDynamicProvider(ctx context.Context, cfg *config.LLMConfig) (*DynamicProvider, error) {
	return newDynamicProvider(ctx, cfg, NewProvider)
}

func newDynamicProvider(
	ctx context.Context,
	cfg *config.LLMConfig,
	build func(ctx context.Context, cfg *config.LLMConfig) (core.AIProvider, error),
) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config: cfg,
		build:  build,
	}

	provider, err := build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(provider)
	return d, nil
}

func (d *DynamicProvider) Chat(ctx context.Context, req core.ChatRequest) (core.Message, error) {
	provider := d.current.Load().(core.AIProvider)
	return provider.Chat(ctx, req)
}

func (d *DynamicProvider) Models(ctx context.Context) ([]core.Model, error) {
	lister, ok := d.current.Load().(core.ModelLister)
	if !ok {
		return nil, fmt.Errorf("provider %s cannot list models", d.config.GetProvider())
	}
	return lister.Models(ctx)
}

func (d *DynamicProvider) GetModel() string {
	return d.config.GetModel()
}

// SetModel swaps the active client. On error the previous model stays active.
func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.config.Snapshot()
	next.Model = model

	provider, err := d.build(ctx, &next)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	d.config.SetModel(model)
	d.current.Store(provider)
	return nil
}
