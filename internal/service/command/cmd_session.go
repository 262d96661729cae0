package command

import (
	"context"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const ResetReply = "✓ Conversación reiniciada"

type SessionResetter interface {
	Reset(id string)
}

type ResetCommand struct {
	sessions SessionResetter
}

func NewResetCommand(sessions SessionResetter) core.Command {
	return &ResetCommand{sessions: sessions}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Aliases() []string {
	return []string{"reiniciar"}
}

func (c *ResetCommand) Description() string {
	return "Borra el historial de la conversación"
}

func (c *ResetCommand) Execute(_ context.Context, sessionID string, _ []string) (string, error) {
	c.sessions.Reset(sessionID)
	return ResetReply, nil
}

type ExitCommand struct{}

func NewExitCommand() core.Command {
	return ExitCommand{}
}

func (ExitCommand) Name() string {
	return "salir"
}

func (ExitCommand) Aliases() []string {
	return []string{"exit", "quit"}
}

func (ExitCommand) Description() string {
	return "Termina la sesión"
}

func (ExitCommand) Execute(context.Context, string, []string) (string, error) {
	return "", ErrExit
}
