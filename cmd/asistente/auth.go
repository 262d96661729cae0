package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/calendar"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/ui"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Autoriza el acceso a Google Calendar",
	Long: `Abre el flujo OAuth de Google en el navegador y guarda el token en el directorio
de ejecución. Necesita el fichero de credenciales OAuth (cliente de escritorio).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		initEnv(ctx)

		appCfg := config.NewAppConfig(ctx)
		calCfg := config.NewCalendarConfig(ctx, appCfg.GetRuntimePath())

		oauthCfg, err := calendar.LoadOAuthConfig(calCfg.CredentialsFile)
		if err != nil {
			return fmt.Errorf("coloca las credenciales OAuth en %s: %w", calCfg.CredentialsFile, err)
		}

		token := &calendar.TokenFile{Path: calCfg.TokenFile}
		err = calendar.Authorize(ctx, oauthCfg, token, func(url string) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.TitleStyle.Render("Abre este enlace en el navegador para autorizar el acceso:"))
			fmt.Fprintln(cmd.OutOrStdout(), url)
		})
		if err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Str("path", calCfg.TokenFile).Msg("google token saved")
		fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("✓ Google Calendar autorizado"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
