package installer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/providers/llm"
)

const fetchTimeout = 30 * time.Second

var errNoModels = errors.New("el proveedor no devolvió modelos")

// FetchModels builds a client from vars and asks it for its models.
func FetchModels(ctx context.Context, vars map[string]string) ([]core.Model, error) {
	cfg, err := config.ParseLLMConfig(vars)
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	lister, ok := provider.(core.ModelLister)
	if !ok {
		return nil, fmt.Errorf("%s no permite listar modelos", cfg.GetProvider())
	}
	return lister.Models(ctx)
}

// ModelStep lets the user pick one of the models the provider lists. When
// listing fails it hands over to ManualModelStep.
type ModelStep struct {
	list     list.Model
	fetch    ModelFetcher
	fetching bool
}

func NewModelStep(fetch ModelFetcher) Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Elige el modelo"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{
		list:  l,
		fetch: fetch,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return next
}

func (s *ModelStep) load(state *InstallState) tea.Cmd {
	vars := make(map[string]string, len(state.EnvVars))
	for k, v := range state.EnvVars {
		vars[k] = v
	}
	fetch := s.fetch

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		models, err := fetch(ctx, vars)
		if err != nil {
			return modelsErrMsg{err}
		}
		if len(models) == 0 {
			return modelsErrMsg{errNoModels}
		}

		items := make([]list.Item, 0, len(models))
		for _, mod := range models {
			title := mod.Name
			if title == "" {
				title = mod.ID
			}
			items = append(items, item{id: mod.ID, title: title, desc: mod.ID})
		}
		return modelsMsg(items)
	}
}

// modelsErrMsg reports a failed listing to ModelStep only.
type modelsErrMsg struct{ err error }

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.fetching {
		s.fetching = true
		return s, s.load(state)
	}

	if width > 0 && height > 4 {
		s.list.SetSize(width, height-4)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case modelsMsg:
		cmd = s.list.SetItems(msg)
		return s, cmd

	case modelsErrMsg:
		manual := NewManualModelStep(msg.err)
		return manual, manual.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			wasFiltering := s.list.FilterState() == list.Filtering
			s.list, cmd = s.list.Update(msg)
			if wasFiltering || s.list.FilterState() == list.Filtering {
				return s, cmd
			}

			if i, ok := s.list.SelectedItem().(item); ok {
				state.EnvVars[KeyModel] = i.id
				return nil, nil
			}
			return s, cmd
		}
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if len(s.list.Items()) == 0 {
		return "Consultando los modelos disponibles...\n"
	}
	return s.list.View()
}

// ManualModelStep asks for the model id as free text.
type ManualModelStep struct {
	input textinput.Model
	cause error
}

func NewManualModelStep(cause error) *ManualModelStep {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = DefaultModel
	ti.Width = 50
	return &ManualModelStep{input: ti, cause: cause}
}

func (s *ManualModelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ManualModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.input.Placeholder
		}
		state.EnvVars[KeyModel] = val
		return nil, nil
	}
	return s, cmd
}

func (s *ManualModelStep) View(state *InstallState) string {
	var b strings.Builder
	if s.cause != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("No se pudieron listar los modelos: %v", s.cause)) + "\n\n")
	}
	b.WriteString("Escribe el identificador del modelo:\n\n")
	b.WriteString(s.input.View() + "\n\n")
	b.WriteString(hintStyle.Render("(enter para confirmar, vacío usa el valor por defecto)") + "\n")
	return b.String()
}
