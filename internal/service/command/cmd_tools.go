package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const maxDescriptionLen = 120

type ToolsCommand struct {
	ops core.Operations
}

func NewToolsCommand(ops core.Operations) core.Command {
	return &ToolsCommand{ops: ops}
}

func (c *ToolsCommand) Name() string {
	return "herramientas"
}

func (c *ToolsCommand) Aliases() []string {
	return []string{"tools"}
}

func (c *ToolsCommand) Description() string {
	return "Lista las herramientas que puede usar el asistente"
}

func (c *ToolsCommand) Execute(context.Context, string, []string) (string, error) {
	tools := c.ops.Tools()
	if len(tools) == 0 {
		return NewReply("Herramientas").
			Field("Estado", "sin herramientas registradas").
			Hint("Comprueba que el servidor de herramientas está en marcha").
			String(), nil
	}

	items := make([]string, len(tools))
	for i, tool := range tools {
		items[i] = fmt.Sprintf("**%s** %s", tool.Function.Name, shorten(tool.Function.Description))
	}

	return NewReply("Herramientas").
		Field("Disponibles", len(tools)).
		Items(items...).
		String(), nil
}

func shorten(description string) string {
	description = strings.Join(strings.Fields(description), " ")
	if r := []rune(description); len(r) > maxDescriptionLen {
		return string(r[:maxDescriptionLen-3]) + "..."
	}
	return description
}
