package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

var emptySchema = json.RawMessage(`{"type":"object","properties":{}}`)

type descriptor struct {
	name        string
	description string
	schema      json.RawMessage
	invoker     Invoker
}

// Registry maps operation names to callables and publishes them as tools.
// Registration order is kept; re-registering a name replaces the entry in place.
type Registry struct {
	mu    sync.RWMutex
	order []string
	ops   map[string]*descriptor
}

func New() *Registry {
	return &Registry{
		ops: make(map[string]*descriptor),
	}
}

// Register binds name to target. A target that cannot be invoked is still
// published, and dispatching it fails with ErrOperationNotInvocable.
func (r *Registry) Register(name string, target any, description string, schema json.RawMessage) {
	inv, _ := normalize(target)
	if len(schema) == 0 {
		schema = emptySchema
	}

	d := &descriptor{
		name:        name,
		description: description,
		schema:      schema,
		invoker:     inv,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ops[name]; !exists {
		r.order = append(r.order, name)
	}
	r.ops[name] = d
}

// Tools returns the catalogue in registration order.
func (r *Registry) Tools() []core.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]core.Tool, 0, len(r.order))
	for _, name := range r.order {
		d := r.ops[name]
		tools = append(tools, core.Tool{
			Type: "function",
			Function: core.Function{
				Name:        d.name,
				Description: d.description,
				Parameters:  d.schema,
			},
		})
	}
	return tools
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Dispatch runs the named operation with args and returns its raw result.
// Panics inside the operation are reported as an *OperationError.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (result any, err error) {
	r.mu.RLock()
	d, ok := r.ops[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, name)
	}
	if d.invoker == nil {
		return nil, &OperationError{Operation: name, Err: ErrOperationNotInvocable}
	}
	if args == nil {
		args = map[string]any{}
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = &OperationError{Operation: name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	result, err = d.invoker.Invoke(ctx, args)
	if err != nil {
		return nil, &OperationError{Operation: name, Err: err}
	}
	return result, nil
}
