package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/llm"
)

// URLStep asks for the base URL of self-hosted providers. Other providers skip it.
type URLStep struct {
	input    textinput.Model
	envKey   string
	title    string
	required bool
	ready    bool
}

func NewURLStep() Step {
	return &URLStep{}
}

func (s *URLStep) Init() tea.Cmd {
	return next
}

func (s *URLStep) initProvider(state *InstallState) bool {
	s.input = textinput.New()
	s.input.Focus()
	s.input.Width = 50

	switch state.Provider() {
	case llm.ProviderOllama:
		s.envKey = KeyOllamaBaseURL
		s.title = "URL de Ollama"
		s.input.Placeholder = defaultOllamaHost
	case llm.ProviderCustom:
		s.envKey = KeyCustomBaseURL
		s.title = "URL base compatible con OpenAI"
		s.input.Placeholder = "https://api.example.com/v1"
		s.required = true
	default:
		return false
	}

	s.ready = true
	return true
}

func (s *URLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.required {
			val = s.input.Placeholder
		}
		if val != "" {
			state.EnvVars[s.envKey] = val
			return nil, nil
		}
	}
	return s, cmd
}

func (s *URLStep) View(state *InstallState) string {
	if !s.ready {
		return "Cargando...\n"
	}
	return "Introduce la " + s.title + ":\n\n" + s.input.View() + "\n\n" + hintStyle.Render("(enter para confirmar)") + "\n"
}
