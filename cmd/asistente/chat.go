package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/transport/cli"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/srv"
)

var (
	transportFlag string
	modelFlag     string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Abre la conversación interactiva (por defecto)",
	RunE:  runChat,
}

func addChatFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&transportFlag, "transport", "", "dónde se ejecutan las herramientas: local | mcp")
	cmd.PersistentFlags().StringVar(&modelFlag, "model", "", "modelo a usar, sustituye MODEL_NAME")
}

// runChat does not install a signal handler: readline turns Ctrl-C into
// ErrInterrupt and the loop asks before leaving.
func runChat(cmd *cobra.Command, _ []string) error {
	ctx, flushLog := setupLogger(cmd.Context())
	defer flushLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	deps := NewChat(ctx, chatOverrides{transport: transportFlag, model: modelFlag})

	rl, err := cli.NewReadLine(deps.Agent, deps.Sessions, deps.Router, deps.App)
	if err != nil {
		_ = deps.Close()
		return err
	}

	services := []srv.Service{
		srv.NewCleanup(deps.Close),
		rl,
	}

	err = rl.Start(ctx)

	cancel()
	srv.ShutdownServices(ctx, services)
	return err
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
