package installer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
)

// FinalizationStep fills derived values and defaults.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return next
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.EnvVars[KeyModel] == "" {
		state.EnvVars[KeyModel] = DefaultModel
	}
	if state.EnvVars[KeyTimeZone] == "" {
		state.EnvVars[KeyTimeZone] = DefaultTimeZone
	}
	if state.EnvVars[KeyToolTransport] == "" {
		state.EnvVars[KeyToolTransport] = config.TransportLocal
	}

	for k, v := range state.EnvVars {
		if v == "" {
			delete(state.EnvVars, k)
		}
	}
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Preparando la configuración...\n"
}
