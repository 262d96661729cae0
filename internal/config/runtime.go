package config

import (
	"os"
	"path/filepath"
)

const (
	RuntimePathEnv     = "ASISTENTE_RUNTIME_PATH"
	defaultRuntimePath = ".asistente"
)

// GetRuntimePath resolves the runtime directory. Relative paths are taken
// from the user's home.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv(RuntimePathEnv))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimePath
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
