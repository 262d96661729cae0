package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/installer"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/ui"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/env"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

var (
	forceInit    bool
	defaultsInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configura el asistente y crea el directorio de ejecución",
	Long: `Crea el directorio de ejecución y el fichero .env.

En una terminal abre un asistente interactivo (proveedor, credenciales, modelo y
zona horaria). Con --defaults, o sin terminal, escribe los valores actuales.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)

		initEnv(ctx)

		appCfg := config.NewAppConfig(ctx)
		calCfg := config.NewCalendarConfig(ctx, appCfg.GetRuntimePath())

		envPath := appCfg.GetEnvPath()
		if _, err := os.Stat(envPath); err == nil && !forceInit {
			return fmt.Errorf("%s ya existe, usa --force para sobrescribirlo", envPath)
		}

		for _, dir := range []string{
			appCfg.GetRuntimePath(),
			appCfg.GetDataDir(),
			filepath.Dir(calCfg.CredentialsFile),
		} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}

		if defaultsInit || !isatty.IsTerminal(os.Stdin.Fd()) {
			llmCfg := config.NewLLMConfig(ctx)
			mcpCfg := config.NewMCPConfig(ctx)

			content, err := env.MarshalEnv(appCfg, llmCfg, mcpCfg, calCfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", envPath, err)
			}
		} else {
			state, err := installer.RunWizard(ctx, installer.Options{
				EnvPath: envPath,
				Force:   forceInit,
			})
			if errors.Is(err, installer.ErrInterrupted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuración cancelada.")
				return nil
			}
			if err != nil {
				return err
			}
			logger.Debug().Int("keys", len(state.EnvVars)).Msg("wizard finished")
		}

		logger.Info().Str("path", envPath).Msg("runtime directory initialized")
		fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("✓ Configuración creada en "+envPath))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "sobrescribe un .env existente")
	initCmd.Flags().BoolVar(&defaultsInit, "defaults", false, "escribe los valores actuales sin preguntar")
	rootCmd.AddCommand(initCmd)
}
