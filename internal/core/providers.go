package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, req ChatRequest) (Message, error)
}

type Model struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type ModelLister interface {
	Models(ctx context.Context) ([]Model, error)
}

// Operations is the catalogue the conversation engine offers to the model.
type Operations interface {
	Tools() []Tool
	Dispatch(ctx context.Context, name string, args map[string]any) (any, error)
}
