package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

const (
	DefaultMaxTurns     = 10
	DefaultMaxTokens    = 1000
	DefaultTemperature  = 0.7
	DefaultModelTimeout = 60 * time.Second

	ToolChoiceAuto = "auto"

	ErrorReplyFormat = "Lo siento, hubo un error al procesar tu solicitud: %v"
	PartialReply     = "He procesado tu solicitud pero encontré un error al generar la respuesta final."
	TurnLimitReply   = "Se alcanzó el límite de iteraciones internas. Por favor, reformula tu pregunta."

	toolResultLabel = "Resultado de la herramienta '%s' con argumentos %s:\n%s"
)

type Options struct {
	MaxTurns    int
	MaxTokens   int
	Temperature float64
	// ModelTimeout bounds each model call. Zero disables the bound.
	ModelTimeout time.Duration
	// ToolResultRole is core.RoleUser (results folded into a user message)
	// or core.RoleTool (results answer the assistant's tool calls by id).
	ToolResultRole  string
	ToolParallelism int
}

func DefaultOptions() Options {
	return Options{
		MaxTurns:        DefaultMaxTurns,
		MaxTokens:       DefaultMaxTokens,
		Temperature:     DefaultTemperature,
		ModelTimeout:    DefaultModelTimeout,
		ToolResultRole:  core.RoleUser,
		ToolParallelism: 1,
	}
}

// Agent runs the tool-calling loop: ask the model, execute requested
// operations, feed results back, repeat until a plain answer or the turn limit.
type Agent struct {
	ai       core.AIProvider
	ops      core.Operations
	prompt   *SysPrompt
	executor *Executor
	opts     Options
}

func NewAgent(ai core.AIProvider, ops core.Operations, prompt *SysPrompt, opts Options) *Agent {
	if opts.MaxTurns < 1 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.ToolResultRole != core.RoleTool {
		opts.ToolResultRole = core.RoleUser
	}
	return &Agent{
		ai:       ai,
		ops:      ops,
		prompt:   prompt,
		executor: NewExecutor(ops, opts.ToolParallelism),
		opts:     opts,
	}
}

// Send appends the user's text to the session and returns the final answer.
// It never returns an error: failures become a user-facing message.
func (a *Agent) Send(ctx context.Context, s *Session, input string) string {
	s.turn.Lock()
	defer s.turn.Unlock()

	logger := log.FromCtx(ctx).With().Str("session", s.ID).Logger()
	ctx = logger.WithContext(ctx)

	s.append(core.Message{Role: core.RoleUser, Content: input})

	for turn := 0; turn < a.opts.MaxTurns; turn++ {
		resp, err := a.complete(ctx, s)
		if err != nil {
			logger.Error().Err(err).Int("turn", turn).Msg("model request failed")
			if turn == 0 {
				return fmt.Sprintf(ErrorReplyFormat, err)
			}
			return PartialReply
		}

		if len(resp.ToolCalls) == 0 {
			s.append(core.Message{Role: core.RoleAssistant, Content: resp.Content})
			return resp.Content
		}

		logger.Debug().Int("turn", turn).Int("tool_calls", len(resp.ToolCalls)).Msg("model requested tools")
		a.runTools(ctx, s, turn, resp)
	}

	logger.Warn().Int("max_turns", a.opts.MaxTurns).Msg("turn limit reached")
	return TurnLimitReply
}

// Reset clears the session history.
func (a *Agent) Reset(s *Session) {
	s.Reset()
}

func (a *Agent) complete(ctx context.Context, s *Session) (core.Message, error) {
	history := s.History()
	if a.opts.ToolResultRole == core.RoleTool {
		history = sanitizeToolCalls(ctx, history)
	}

	req := core.ChatRequest{
		Messages:    append([]core.Message{a.prompt.Build()}, history...),
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	}
	if tools := a.ops.Tools(); len(tools) > 0 {
		req.Tools = tools
		req.ToolChoice = ToolChoiceAuto
	}

	if a.opts.ModelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.ModelTimeout)
		defer cancel()
	}
	return a.ai.Chat(ctx, req)
}

func (a *Agent) runTools(ctx context.Context, s *Session, turn int, resp core.Message) {
	calls := withCallIDs(resp.ToolCalls, turn)

	if a.opts.ToolResultRole == core.RoleTool {
		s.append(core.Message{Role: core.RoleAssistant, Content: resp.Content, ToolCalls: calls})
	} else if resp.Content != "" {
		s.append(core.Message{Role: core.RoleAssistant, Content: resp.Content})
	}

	results := a.executor.Execute(ctx, calls)

	msgs := make([]core.Message, 0, len(results))
	for _, r := range results {
		msgs = append(msgs, a.resultMessage(r))
	}
	s.append(msgs...)
}

func (a *Agent) resultMessage(r ToolResult) core.Message {
	if a.opts.ToolResultRole == core.RoleTool {
		return core.Message{Role: core.RoleTool, Content: r.Text, ToolCallID: r.Call.ID}
	}

	args, err := encodeJSON(r.Args, false)
	if err != nil {
		args = "{}"
	}
	return core.Message{
		Role:    core.RoleUser,
		Content: fmt.Sprintf(toolResultLabel, r.Call.Function.Name, args, r.Text),
	}
}

// withCallIDs fills missing call ids so tool results can reference them.
func withCallIDs(calls []core.ToolCall, turn int) []core.ToolCall {
	out := make([]core.ToolCall, len(calls))
	for i, tc := range calls {
		if tc.ID == "" {
			tc.ID = fmt.Sprintf("call_%d_%d", turn, i)
		}
		if tc.Type == "" {
			tc.Type = "function"
		}
		out[i] = tc
	}
	return out
}
