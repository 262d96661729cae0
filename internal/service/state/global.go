package state

import (
	"context"
	"errors"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

var ErrModelsUnsupported = errors.New("el proveedor actual no permite listar modelos")

type provider interface {
	SetModel(ctx context.Context, model string) error
}

// GlobalState is the process-wide switchboard the slash commands act on.
type GlobalState struct {
	provider provider
}

var _ core.GlobalState = (*GlobalState)(nil)

func NewGlobalState(
	provider provider,
) *GlobalState {
	return &GlobalState{
		provider: provider,
	}
}

func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	return s.provider.SetModel(ctx, model)
}

func (s *GlobalState) ListModels(ctx context.Context) ([]core.Model, error) {
	lister, ok := s.provider.(core.ModelLister)
	if !ok {
		return nil, ErrModelsUnsupported
	}
	return lister.Models(ctx)
}
