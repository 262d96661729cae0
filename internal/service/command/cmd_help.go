package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

var helpExamples = []string{
	"¿Qué clases tengo de Programación?",
	"¿Dónde está el despacho de la profesora García?",
	"Crea una tarea para entregar la práctica el 15 de diciembre",
	"¿Qué eventos tengo en el calendario esta semana?",
}

type HelpCommand struct {
	commands interface{ ListCommands() []core.Command }
}

func NewHelpCommand(commands interface{ ListCommands() []core.Command }) core.Command {
	return &HelpCommand{commands: commands}
}

func (c *HelpCommand) Name() string {
	return "ayuda"
}

func (c *HelpCommand) Aliases() []string {
	return []string{"help"}
}

func (c *HelpCommand) Description() string {
	return "Muestra los comandos disponibles"
}

func (c *HelpCommand) Execute(context.Context, string, []string) (string, error) {
	var items []string
	for _, cmd := range c.commands.ListCommands() {
		names := []string{"/" + cmd.Name()}
		if a, ok := cmd.(aliased); ok {
			for _, alias := range a.Aliases() {
				names = append(names, "/"+alias)
			}
		}
		items = append(items, fmt.Sprintf("`%s` %s", strings.Join(names, "|"), cmd.Description()))
	}

	return NewReply("Comandos").
		Items(items...).
		examples("Prueba a preguntar", helpExamples...).
		String(), nil
}
