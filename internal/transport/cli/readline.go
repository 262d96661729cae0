package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/chzyer/readline"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/agent"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/command"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/ui"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

const (
	DefaultSessionID = "cli-local"

	thinkingStatus = "Pensando..."
	exitQuestion   = "¿Quieres salir? (s/n) "
	goodbye        = "¡Hasta luego!"
	clearLine      = "\r\033[K"
	wordWrap       = 88
)

type chatter interface {
	Send(ctx context.Context, s *agent.Session, input string) string
}

// ReadLine is the interactive prompt loop. Slash commands go to the router,
// anything else to the agent.
type ReadLine struct {
	agent    chatter
	sessions *agent.SessionStore
	router   core.CmdRouter
	rl       *readline.Instance
	out      io.Writer
	markdown *glamour.TermRenderer
}

func NewReadLine(
	ag chatter,
	sessions *agent.SessionStore,
	router core.CmdRouter,
	cfg *config.AppConfig,
) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.PromptStyle.Render("Tú › "),
		HistoryFile:     cfg.GetHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "/salir",
	})
	if err != nil {
		return nil, err
	}

	markdown, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		markdown = nil
	}

	return &ReadLine{
		agent:    ag,
		sessions: sessions,
		router:   router,
		rl:       rl,
		out:      rl.Stdout(),
		markdown: markdown,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Debug().Msg("readline chat started")

	fmt.Fprintln(r.out, ui.Banner(core.AppName, "Escribe /ayuda para ver los comandos, /salir para terminar."))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if r.confirmExit() {
				fmt.Fprintln(r.out, goodbye)
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if r.Handle(ctx, line) {
			fmt.Fprintln(r.out, goodbye)
			return nil
		}
	}
}

// Handle processes one input line and reports whether the loop should end.
func (r *ReadLine) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	out, handled, err := r.router.Execute(ctx, DefaultSessionID, line)
	if errors.Is(err, command.ErrExit) {
		return true
	}
	if handled {
		if err != nil {
			fmt.Fprintln(r.out, ui.ErrorStyle.Render(command.Failure(err)))
			return false
		}
		if out == command.ResetReply {
			fmt.Fprintln(r.out, ui.SuccessStyle.Render(out))
			return false
		}
		fmt.Fprintln(r.out, r.render(out))
		return false
	}

	fmt.Fprint(r.out, ui.StatusStyle.Render(thinkingStatus))
	answer := r.agent.Send(ctx, r.sessions.Get(DefaultSessionID), line)
	fmt.Fprint(r.out, clearLine)

	fmt.Fprintln(r.out, ui.PanelStyle.Render(strings.TrimSpace(r.render(answer))))
	return false
}

func (r *ReadLine) confirmExit() bool {
	prompt := r.rl.Config.Prompt
	r.rl.SetPrompt(exitQuestion)
	defer r.rl.SetPrompt(prompt)

	answer, err := r.rl.Readline()
	if err != nil {
		return true
	}
	return IsAffirmative(answer)
}

func (r *ReadLine) render(markdown string) string {
	if r.markdown == nil {
		return markdown
	}
	rendered, err := r.markdown.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// IsAffirmative accepts s, si, sí, y and yes in any case.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}
