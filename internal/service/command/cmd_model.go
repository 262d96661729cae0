package command

import (
	"context"
	"fmt"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

type ModelCommand struct {
	cfg   core.ProviderConfig
	state core.GlobalState
}

func NewModelCommand(
	cfg core.ProviderConfig,
	state core.GlobalState,
) *ModelCommand {
	return &ModelCommand{cfg: cfg, state: state}
}

func (c *ModelCommand) Name() string {
	return "modelo"
}

func (c *ModelCommand) Aliases() []string {
	return []string{"model"}
}

func (c *ModelCommand) Description() string {
	return "Muestra o cambia el modelo actual"
}

func (c *ModelCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return NewReply("Modelo actual").
			Field("Proveedor", c.cfg.GetProvider()).
			Field("Modelo", c.cfg.GetModel()).
			Usage("/modelo [nombre]",
				"/modelo Qwen/Qwen2.5-72B-Instruct",
				"/modelo meta-llama/Llama-3.3-70B-Instruct",
			).
			String(), nil
	}

	if err := c.state.ChangeModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("no se pudo cambiar el modelo: %w", err)
	}

	return Confirm(fmt.Sprintf("Modelo cambiado a: `%s`", c.cfg.GetModel())), nil
}

type ModelsCommand struct {
	state core.GlobalState
}

func NewModelsCommand(state core.GlobalState) *ModelsCommand {
	return &ModelsCommand{state: state}
}

func (c *ModelsCommand) Name() string {
	return "modelos"
}

func (c *ModelsCommand) Description() string {
	return "Lista los modelos del proveedor"
}

func (c *ModelsCommand) Execute(ctx context.Context, _ string, _ []string) (string, error) {
	models, err := c.state.ListModels(ctx)
	if err != nil {
		return "", err
	}

	items := make([]string, len(models))
	for i, m := range models {
		if m.Name != "" && m.Name != m.ID {
			items[i] = fmt.Sprintf("`%s` %s", m.ID, m.Name)
			continue
		}
		items[i] = fmt.Sprintf("`%s`", m.ID)
	}

	return NewReply("Modelos").
		Field("Total", len(models)).
		Items(items...).
		String(), nil
}
