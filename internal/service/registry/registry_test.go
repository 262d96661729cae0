package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomSchema = json.RawMessage(`{"type":"object","properties":{"codigo_aula":{"type":"string"}},"required":["codigo_aula"]}`)

type echoOp struct{}

func (echoOp) Invoke(_ context.Context, args map[string]any) (any, error) {
	return args, nil
}

type wrapped struct{ fn any }

func (w wrapped) Func() any { return w.fn }

type caller struct{}

func (caller) Call(_ context.Context, args map[string]any) (any, error) {
	return "called", nil
}

type selfWrapped struct{}

func (s selfWrapped) Unwrap() any { return s }

func TestRegistry_ToolsOrderAndShape(t *testing.T) {
	reg := New()
	reg.Register("consultar_aula", echoOp{}, "Consulta un aula", roomSchema)
	reg.Register("listar_profesores", echoOp{}, "Lista profesores", nil)

	tools := reg.Tools()
	require.Len(t, tools, 2)

	out, err := json.Marshal(tools[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "function",
		"function": {
			"name": "consultar_aula",
			"description": "Consulta un aula",
			"parameters": {"type":"object","properties":{"codigo_aula":{"type":"string"}},"required":["codigo_aula"]}
		}
	}`, string(out))

	assert.Equal(t, "listar_profesores", tools[1].Function.Name)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(tools[1].Function.Parameters))
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	reg := New()
	reg.Register("a", echoOp{}, "first", nil)
	reg.Register("b", echoOp{}, "b", nil)
	reg.Register("a", func(context.Context, map[string]any) (any, error) { return "second", nil }, "second", nil)

	assert.Equal(t, []string{"a", "b"}, reg.Names())
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, "second", reg.Tools()[0].Function.Description)

	got, err := reg.Dispatch(context.Background(), "a", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestRegistry_Dispatch(t *testing.T) {
	errBoom := errors.New("boom")

	reg := New()
	reg.Register("echo", echoOp{}, "", nil)
	reg.Register("fails", func(context.Context, map[string]any) (any, error) { return nil, errBoom }, "", nil)
	reg.Register("panics", func(map[string]any) (any, error) { panic("kaboom") }, "", nil)
	reg.Register("not_callable", 42, "", nil)
	reg.Register("nil_target", nil, "", nil)

	tests := []struct {
		name      string
		operation string
		args      map[string]any
		want      any
		wantIs    error
		wantText  string
	}{
		{name: "returns raw result", operation: "echo", args: map[string]any{"x": 1.0}, want: map[string]any{"x": 1.0}},
		{name: "nil args become empty map", operation: "echo", want: map[string]any{}},
		{name: "unknown operation", operation: "missing", wantIs: ErrOperationNotFound},
		{name: "operation error is wrapped", operation: "fails", wantIs: errBoom, wantText: "Error ejecutando fails: boom"},
		{name: "panic is recovered", operation: "panics", wantText: "Error ejecutando panics: panic: kaboom"},
		{name: "non callable target", operation: "not_callable", wantIs: ErrOperationNotInvocable},
		{name: "nil target", operation: "nil_target", wantIs: ErrOperationNotInvocable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Dispatch(context.Background(), tt.operation, tt.args)
			if tt.wantIs == nil && tt.wantText == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.Nil(t, got)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantText != "" {
				assert.EqualError(t, err, tt.wantText)
			}
			if !errors.Is(err, ErrOperationNotFound) {
				var opErr *OperationError
				require.ErrorAs(t, err, &opErr)
				assert.Equal(t, tt.operation, opErr.Operation)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	ctx := context.Background()
	args := map[string]any{"codigo_aula": "A-201"}

	tests := []struct {
		name   string
		target any
		want   any
		ok     bool
	}{
		{name: "invoker", target: echoOp{}, want: args, ok: true},
		{name: "context map func", target: func(_ context.Context, a map[string]any) (any, error) { return a["codigo_aula"], nil }, want: "A-201", ok: true},
		{name: "map func", target: func(a map[string]any) (any, error) { return len(a), nil }, want: 1, ok: true},
		{name: "no-arg func", target: func(context.Context) (any, error) { return "none", nil }, want: "none", ok: true},
		{name: "raw json func", target: func(_ context.Context, raw json.RawMessage) (string, error) { return string(raw), nil }, want: `{"codigo_aula":"A-201"}`, ok: true},
		{name: "raw json any func", target: func(_ context.Context, raw json.RawMessage) (any, error) { return len(raw), nil }, want: 23, ok: true},
		{name: "wrapped func", target: wrapped{fn: echoOp{}}, want: args, ok: true},
		{name: "nested wrappers", target: wrapped{fn: wrapped{fn: caller{}}}, want: "called", ok: true},
		{name: "caller", target: caller{}, want: "called", ok: true},
		{name: "plain value", target: "text", ok: false},
		{name: "wrong func shape", target: func(string) string { return "" }, ok: false},
		{name: "self wrapping", target: selfWrapped{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := normalize(tt.target)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			got, err := inv.Invoke(ctx, args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ConcurrentDispatch(t *testing.T) {
	reg := New()
	reg.Register("echo", echoOp{}, "", nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := reg.Dispatch(context.Background(), "echo", map[string]any{"i": i})
			assert.NoError(t, err)
			assert.Equal(t, map[string]any{"i": i}, got)
		}(i)
		if i%8 == 0 {
			reg.Register(fmt.Sprintf("extra_%d", i), echoOp{}, "", nil)
		}
	}
	wg.Wait()
}
