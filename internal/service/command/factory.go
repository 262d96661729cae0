package command

import (
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

// NewRouter builds the router with every chat command, help included.
func NewRouter(
	sessions SessionResetter,
	ops core.Operations,
	cfg core.ProviderConfig,
	state core.GlobalState,
) *Router {
	router := New([]core.Command{
		NewResetCommand(sessions),
		NewToolsCommand(ops),
		NewModelCommand(cfg, state),
		NewModelsCommand(state),
		NewExitCommand(),
	})
	router.Add(NewHelpCommand(router))
	return router
}
