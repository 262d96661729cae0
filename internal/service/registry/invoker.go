package registry

import (
	"context"
	"encoding/json"
	"fmt"
)

// maxUnwrapDepth limits how many wrapper layers are followed before a target
// is declared not invocable.
const maxUnwrapDepth = 8

// Invoker is the normalized form of every registered target.
type Invoker interface {
	Invoke(ctx context.Context, args map[string]any) (any, error)
}

type InvokerFunc func(ctx context.Context, args map[string]any) (any, error)

func (f InvokerFunc) Invoke(ctx context.Context, args map[string]any) (any, error) {
	return f(ctx, args)
}

// Caller is the generic call protocol tried after direct invocation and unwrapping.
type Caller interface {
	Call(ctx context.Context, args map[string]any) (any, error)
}

type funcHolder interface{ Func() any }
type fnHolder interface{ Fn() any }
type unwrapper interface{ Unwrap() any }

// normalize resolves target to an Invoker. It accepts Invokers, a few plain
// function shapes, wrappers exposing Func, Fn or Unwrap, and Callers.
func normalize(target any) (Invoker, bool) {
	for depth := 0; depth < maxUnwrapDepth; depth++ {
		if inv, ok := direct(target); ok {
			return inv, true
		}

		switch t := target.(type) {
		case funcHolder:
			target = t.Func()
			continue
		case fnHolder:
			target = t.Fn()
			continue
		case unwrapper:
			target = t.Unwrap()
			continue
		case Caller:
			return InvokerFunc(t.Call), true
		}
		return nil, false
	}
	return nil, false
}

func direct(target any) (Invoker, bool) {
	switch t := target.(type) {
	case nil:
		return nil, false
	case Invoker:
		return t, true
	case func(context.Context, map[string]any) (any, error):
		return InvokerFunc(t), true
	case func(map[string]any) (any, error):
		return InvokerFunc(func(_ context.Context, args map[string]any) (any, error) {
			return t(args)
		}), true
	case func(context.Context) (any, error):
		return InvokerFunc(func(ctx context.Context, _ map[string]any) (any, error) {
			return t(ctx)
		}), true
	case func(context.Context, json.RawMessage) (any, error):
		return InvokerFunc(func(ctx context.Context, args map[string]any) (any, error) {
			raw, err := encodeArgs(args)
			if err != nil {
				return nil, err
			}
			return t(ctx, raw)
		}), true
	case func(context.Context, json.RawMessage) (string, error):
		return InvokerFunc(func(ctx context.Context, args map[string]any) (any, error) {
			raw, err := encodeArgs(args)
			if err != nil {
				return nil, err
			}
			return t(ctx, raw)
		}), true
	}
	return nil, false
}

func encodeArgs(args map[string]any) (json.RawMessage, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}
	return raw, nil
}
