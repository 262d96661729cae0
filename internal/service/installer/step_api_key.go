package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/llm"
)

// APIKeyStep collects the provider credential. Ollama and custom endpoints may go without one.
type APIKeyStep struct {
	input      textinput.Model
	provider   string
	envKey     string
	title      string
	isOptional bool
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return next
}

func (s *APIKeyStep) initProvider(state *InstallState) bool {
	s.provider = state.Provider()

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'

	switch s.provider {
	case llm.ProviderHuggingFace:
		s.envKey = "HF_TOKEN"
		s.title = "token de Hugging Face"
		s.input.Placeholder = "hf_..."
	case llm.ProviderOpenAI:
		s.envKey = "OPENAI_API_KEY"
		s.title = "API key de OpenAI"
		s.input.Placeholder = "sk-..."
	case llm.ProviderAnthropic:
		s.envKey = "ANTHROPIC_API_KEY"
		s.title = "API key de Anthropic"
		s.input.Placeholder = "sk-ant-..."
	case llm.ProviderOpenRouter:
		s.envKey = "OPENROUTER_API_KEY"
		s.title = "API key de OpenRouter"
		s.input.Placeholder = "sk-or-v1-..."
	case llm.ProviderOllama:
		s.envKey = "OLLAMA_API_KEY"
		s.title = "API key de Ollama"
		s.isOptional = true
		s.input.EchoMode = textinput.EchoNormal
	case llm.ProviderCustom:
		s.envKey = "CUSTOM_OPENAI_API_KEY"
		s.title = "API key del endpoint"
		s.isOptional = true
	default:
		s.provider = ""
		return false
	}

	if s.isOptional {
		s.input.Placeholder = "opcional, enter para omitir"
	}
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		val := strings.TrimSpace(s.input.Value())
		if val == "" && !s.isOptional {
			return s, cmd
		}
		if val != "" {
			state.EnvVars[s.envKey] = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.provider == "" {
		return "Cargando...\n"
	}

	optionalHint := ""
	if s.isOptional {
		optionalHint = " (opcional)"
	}

	return fmt.Sprintf("Introduce tu %s%s:\n\n%s\n\n%s\n",
		s.title, optionalHint, s.input.View(), hintStyle.Render("(enter para confirmar)"))
}
