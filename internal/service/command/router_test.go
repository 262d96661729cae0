package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

type fakeSessions struct {
	reset []string
}

func (f *fakeSessions) Reset(id string) {
	f.reset = append(f.reset, id)
}

type fakeOps struct {
	tools []core.Tool
}

func (f fakeOps) Tools() []core.Tool {
	return f.tools
}

func (f fakeOps) Dispatch(context.Context, string, map[string]any) (any, error) {
	return nil, nil
}

type fakeConfig struct {
	provider string
	model    string
}

func (c *fakeConfig) GetModel() string    { return c.model }
func (c *fakeConfig) GetProvider() string { return c.provider }

type fakeState struct {
	cfg    *fakeConfig
	err    error
	models []core.Model
}

func (s *fakeState) ChangeModel(_ context.Context, model string) error {
	if s.err != nil {
		return s.err
	}
	s.cfg.model = model
	return nil
}

func (s *fakeState) ListModels(context.Context) ([]core.Model, error) {
	return s.models, s.err
}

func newTestRouter() (*Router, *fakeSessions, *fakeState) {
	sessions := &fakeSessions{}
	cfg := &fakeConfig{provider: "huggingface", model: "Qwen/Qwen2.5-72B-Instruct"}
	state := &fakeState{cfg: cfg, models: []core.Model{{ID: "a"}, {ID: "b", Name: "Modelo B"}}}
	ops := fakeOps{tools: []core.Tool{
		{Type: "function", Function: core.Function{Name: "consultar_aula", Description: "Consulta\n un   aula"}},
	}}
	return NewRouter(sessions, ops, cfg, state), sessions, state
}

func TestRouter_Execute(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantHandled bool
		wantErr     error
		contains    string
	}{
		{name: "plain text is not a command", input: "hola", wantHandled: false},
		{name: "unknown command is forwarded", input: "/desconocido", wantHandled: false},
		{name: "reset", input: "/reset", wantHandled: true, contains: ResetReply},
		{name: "case insensitive", input: "/RESET", wantHandled: true, contains: ResetReply},
		{name: "surrounding spaces", input: "  /reset  ", wantHandled: true, contains: ResetReply},
		{name: "salir", input: "/salir", wantHandled: true, wantErr: ErrExit},
		{name: "exit alias", input: "/Exit", wantHandled: true, wantErr: ErrExit},
		{name: "quit alias", input: "/quit", wantHandled: true, wantErr: ErrExit},
		{name: "tools", input: "/herramientas", wantHandled: true, contains: "**consultar_aula** Consulta un aula"},
		{name: "help lists aliases", input: "/ayuda", wantHandled: true, contains: "/salir|/exit|/quit"},
		{name: "help shows sample questions", input: "/ayuda", wantHandled: true, contains: "**Prueba a preguntar**:\n`¿Qué clases tengo de Programación?`"},
		{name: "model shows current", input: "/modelo", wantHandled: true, contains: "Qwen/Qwen2.5-72B-Instruct"},
		{name: "models", input: "/modelos", wantHandled: true, contains: "`b` Modelo B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := newTestRouter()

			out, handled, err := router.Execute(context.Background(), "cli", tt.input)
			assert.Equal(t, tt.wantHandled, handled)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestRouter_ResetTargetsSession(t *testing.T) {
	router, sessions, _ := newTestRouter()

	_, _, err := router.Execute(context.Background(), "cli-local", "/reiniciar")
	require.NoError(t, err)
	assert.Equal(t, []string{"cli-local"}, sessions.reset)
}

func TestRouter_ChangeModel(t *testing.T) {
	router, _, state := newTestRouter()

	out, handled, err := router.Execute(context.Background(), "cli", "/modelo gpt-4o-mini")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Equal(t, "gpt-4o-mini", state.cfg.model)

	state.err = errors.New("modelo desconocido")
	_, handled, err = router.Execute(context.Background(), "cli", "/modelo x")
	assert.True(t, handled)
	assert.ErrorContains(t, err, "modelo desconocido")
	assert.Equal(t, "gpt-4o-mini", state.cfg.model)
}

func TestRouter_ListCommandsKeepsOrder(t *testing.T) {
	router, _, _ := newTestRouter()

	var names []string
	for _, cmd := range router.ListCommands() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"reset", "herramientas", "modelo", "modelos", "salir", "ayuda"}, names)
}

func TestToolsCommand_Empty(t *testing.T) {
	out, err := NewToolsCommand(fakeOps{}).Execute(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "sin herramientas registradas")
}

func TestShorten(t *testing.T) {
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'á'
	}
	got := []rune(shorten(string(long)))
	assert.Len(t, got, maxDescriptionLen)
	assert.Equal(t, "...", string(got[len(got)-3:]))
}
