package installer

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("configuración interrumpida")

// Step represents a single step in the setup wizard.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// ModelFetcher lists the models a provider offers, given the values collected so far.
type ModelFetcher func(ctx context.Context, vars map[string]string) ([]core.Model, error)

type Options struct {
	EnvPath string
	Force   bool
	Fetch   ModelFetcher
}

func getSteps(opts Options) []Step {
	fetch := opts.Fetch
	if fetch == nil {
		fetch = FetchModels
	}
	return []Step{
		NewProviderStep(),
		NewURLStep(),
		NewAPIKeyStep(),
		NewModelStep(fetch),
		NewTimeZoneStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(opts.EnvPath, opts.Force),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type modelsMsg []list.Item
type errMsg error
type nextMsg struct{}

func next() tea.Msg { return nextMsg{} }

// model is the Bubble Tea model that runs the steps in order.
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	err         error
	width       int
	height      int
}

func initialModel(opts Options) model {
	return model{
		steps: getSteps(opts),
		state: NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case errMsg:
		m.err = msg
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if nextStep == nil {
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}

	// A step may hand over to a different one, e.g. manual model entry.
	if nextStep != m.steps[m.currentStep] {
		m.steps[m.currentStep] = nextStep
	}

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Configuración cancelada.\n"
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + hintStyle.Render("(ctrl+c para salir)") + "\n"
	}

	if m.currentStep >= len(m.steps) {
		return "¡Configuración completada!\n"
	}

	return titleStyle.Render("Asistente Universitario · configuración") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and returns the values it saved.
func RunWizard(ctx context.Context, opts Options) (*InstallState, error) {
	p := tea.NewProgram(initialModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	final := m.(model)
	if final.quitting {
		if final.err != nil {
			return nil, final.err
		}
		return nil, ErrInterrupted
	}

	return final.state, nil
}
