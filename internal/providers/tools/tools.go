package tools

import (
	"context"
	"encoding/json"
)

// Handler is the callable bound to an operation name in the registry.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type Definition struct {
	Name        string
	Description string
	Schema      json.RawMessage
	Handler     Handler
}

// Toolset groups operations backed by one collaborator.
type Toolset interface {
	Definitions() []Definition
}

type Registrar interface {
	Register(name string, target any, description string, schema json.RawMessage)
}

// Register publishes every definition of every set, in order.
func Register(reg Registrar, sets ...Toolset) {
	for _, set := range sets {
		for _, def := range set.Definitions() {
			reg.Register(def.Name, (func(context.Context, map[string]any) (any, error))(def.Handler), def.Description, def.Schema)
		}
	}
}
