package core

import (
	"context"
)

type PromptConfig interface {
	GetSystemPath() string
	GetTimeZone() string
}

type ProviderConfig interface {
	GetModel() string
	GetProvider() string
}

type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
	ListModels(ctx context.Context) ([]Model, error)
}
