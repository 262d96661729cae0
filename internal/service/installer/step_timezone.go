package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/datetime"
)

// TimeZoneStep asks for the IANA zone used for dates and calendar events.
type TimeZoneStep struct {
	input textinput.Model
	err   error
}

func NewTimeZoneStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = DefaultTimeZone
	ti.Width = 40
	return &TimeZoneStep{input: ti}
}

func (s *TimeZoneStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TimeZoneStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.input.Placeholder
		}
		if _, ok := datetime.ResolveLocation(val); !ok {
			s.err = fmt.Errorf("zona horaria desconocida: %s", val)
			return s, cmd
		}
		state.EnvVars[KeyTimeZone] = val
		return nil, nil
	}
	return s, cmd
}

func (s *TimeZoneStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Zona horaria (IANA, p. ej. Atlantic/Canary):\n\n")
	b.WriteString(s.input.View() + "\n\n")
	if s.err != nil {
		b.WriteString(errorStyle.Render(s.err.Error()) + "\n\n")
	}
	b.WriteString(hintStyle.Render("(enter para confirmar)") + "\n")
	return b.String()
}
