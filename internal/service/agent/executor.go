package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/registry"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

// ToolResult is the outcome of one tool call, already serialized for the model.
type ToolResult struct {
	Call core.ToolCall
	Args map[string]any
	Text string
	Err  error
}

// Executor dispatches tool calls against the operation catalogue. With
// parallelism above one, calls of the same turn run concurrently and results
// keep the order of the calls.
type Executor struct {
	ops         core.Operations
	parallelism int
}

func NewExecutor(ops core.Operations, parallelism int) *Executor {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Executor{
		ops:         ops,
		parallelism: parallelism,
	}
}

func (e *Executor) Execute(ctx context.Context, calls []core.ToolCall) []ToolResult {
	results := make([]ToolResult, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, tc := range calls {
		g.Go(func() error {
			results[i] = e.run(gctx, tc)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *Executor) run(ctx context.Context, tc core.ToolCall) ToolResult {
	logger := log.FromCtx(ctx)
	name := tc.Function.Name

	args, err := ParseArguments(tc.Function.Arguments)
	if err != nil {
		logger.Warn().Err(err).Str("tool", name).Str("raw", string(tc.Function.Arguments)).Msg("failed to parse tool arguments, using empty arguments")
	}

	logger.Info().Str("tool", name).Interface("args", args).Msg("executing tool")

	value, err := e.ops.Dispatch(ctx, name, args)
	if err != nil {
		logger.Error().Err(err).Str("tool", name).Msg("tool failed")
		return ToolResult{Call: tc, Args: args, Text: encodeError(name, err), Err: err}
	}

	text, err := encodeJSON(value, true)
	if err != nil {
		err = fmt.Errorf("encode result: %w", err)
		return ToolResult{Call: tc, Args: args, Text: encodeError(name, err), Err: err}
	}
	return ToolResult{Call: tc, Args: args, Text: text}
}

// ParseArguments decodes raw tool-call arguments into a map. Empty input is an
// empty map. Malformed or non-object input also yields an empty map, plus an
// error for logging. A JSON string holding an object is unwrapped once.
func ParseArguments(raw core.Arguments) (map[string]any, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return map[string]any{}, nil
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return map[string]any{}, fmt.Errorf("parse arguments: %w", err)
	}

	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return map[string]any{}, fmt.Errorf("parse nested arguments: %w", err)
		}
	}

	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case nil:
		return map[string]any{}, nil
	default:
		return map[string]any{}, fmt.Errorf("arguments must be a JSON object, got %T", v)
	}
}

func encodeError(name string, err error) string {
	text, _ := encodeJSON(map[string]string{"error": errorText(name, err)}, false)
	return text
}

func errorText(name string, err error) string {
	if errors.Is(err, registry.ErrOperationNotFound) {
		return fmt.Sprintf("Herramienta '%s' no encontrada", name)
	}
	var opErr *registry.OperationError
	if errors.As(err, &opErr) {
		return opErr.Error()
	}
	return fmt.Sprintf("Error ejecutando %s: %v", name, err)
}

// encodeJSON keeps non-ASCII and HTML characters literal.
func encodeJSON(v any, indent bool) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
