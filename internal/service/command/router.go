package command

import (
	"context"
	"errors"
	"strings"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

// ErrExit is returned by commands that end the interactive session.
var ErrExit = errors.New("exit requested")

// aliased commands answer to more than one name.
type aliased interface {
	Aliases() []string
}

// Router dispatches "/name args..." input to registered commands. Names are
// matched case-insensitively; input that is not a known command is left to
// the caller.
type Router struct {
	order    []core.Command
	commands map[string]core.Command
}

var _ core.CmdRouter = (*Router)(nil)

func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}
	c.Add(commands...)
	return c
}

func (c *Router) Add(commands ...core.Command) {
	for _, cmd := range commands {
		c.order = append(c.order, cmd)
		c.commands[strings.ToLower(cmd.Name())] = cmd
		if a, ok := cmd.(aliased); ok {
			for _, alias := range a.Aliases() {
				c.commands[strings.ToLower(alias)] = cmd
			}
		}
	}
}

// Execute reports handled=false when input is not a registered command.
func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool, error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false, nil
	}

	parts := strings.Fields(input)
	name := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return "", false, nil
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	return result, true, err
}

// ListCommands returns commands in registration order.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, len(c.order))
	copy(res, c.order)
	return res
}
