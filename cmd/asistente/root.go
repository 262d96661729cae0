package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/ui"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "asistente",
	Short: "Asistente Universitario: horarios, tareas y calendario desde la terminal",
	Long: `Asistente personal para la universidad. Consulta horarios, profesores y aulas,
gestiona tareas y eventos de Google Calendar conversando con un modelo de lenguaje.`,
	SilenceUsage: true,
	RunE:         runChat,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "activa los logs de depuración")
	addChatFlags(rootCmd)

	CustomizeHelp(rootCmd)
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USO"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "COMANDOS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "OPCIONES"}}
{{StyleFlag (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
