package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/llm"
)

// ProviderStep selects the LLM provider.
type ProviderStep struct {
	choices []item
	cursor  int
}

func NewProviderStep() Step {
	return &ProviderStep{
		choices: []item{
			{id: llm.ProviderHuggingFace, title: "Hugging Face", desc: "router de inferencia, necesita HF_TOKEN"},
			{id: llm.ProviderOpenAI, title: "OpenAI"},
			{id: llm.ProviderAnthropic, title: "Anthropic"},
			{id: llm.ProviderOpenRouter, title: "OpenRouter"},
			{id: llm.ProviderOllama, title: "Ollama", desc: "modelos locales"},
			{id: llm.ProviderCustom, title: "Compatible con OpenAI", desc: "cualquier endpoint /v1"},
		},
	}
}

func (s *ProviderStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars[KeyProvider] = s.choices[s.cursor].id
			return nil, nil
		}
	}
	return s, nil
}

func (s *ProviderStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Elige el proveedor del modelo:\n\n")
	for i, choice := range s.choices {
		line := choice.title
		if choice.desc != "" {
			line += hintStyle.Render(" · " + choice.desc)
		}
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", line)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", line)) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("(↑/↓ para moverte, enter para elegir, ctrl+c para salir)") + "\n")
	return b.String()
}
