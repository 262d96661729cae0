package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/mcp"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/srv"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Publica las herramientas como servidor MCP",
	Long: `Arranca el servidor de herramientas: horarios, tareas y calendario se publican
por MCP (HTTP) en /mcp para que otro proceso, o 'asistente chat --transport mcp', los use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting tool server")

		initEnv(ctx)

		appCfg := config.NewAppConfig(ctx)
		mcpCfg := config.NewMCPConfig(ctx)
		if portFlag > 0 {
			mcpCfg.Port = portFlag
		}

		reg := NewLocalRegistry(ctx, appCfg)

		services := []srv.Service{
			mcp.NewHTTPServer(mcpCfg, reg),
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		srv.StartServices(ctx, cancel, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("tool server has been shut down gracefully")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "puerto HTTP, sustituye MCP_PORT")
	rootCmd.AddCommand(serveCmd)
}
