package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// SaveEnvStep writes the collected values to the .env file.
type SaveEnvStep struct {
	path  string
	force bool
	err   error
}

func NewSaveEnvStep(path string, force bool) Step {
	return &SaveEnvStep{path: path, force: force}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return next
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.err != nil {
		return s, nil
	}
	if err := SaveEnv(s.path, state.EnvVars, s.force); err != nil {
		s.err = err
		return s, func() tea.Msg { return errMsg(err) }
	}
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n"
	}
	return "Guardando la configuración...\n"
}

// SaveEnv writes vars as a sorted, quoted .env file readable only by the owner.
// An existing file is kept unless force is set.
func SaveEnv(path string, vars map[string]string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s ya existe, usa --force para sobrescribirlo", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	content, err := godotenv.Marshal(vars)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
