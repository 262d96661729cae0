package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

type FileStorage struct {
	path       string
	defaultURL string
	mu         sync.RWMutex
}

// NewFileStorage reads and writes mcp_config.json at path. A missing file is
// created pointing at defaultURL.
func NewFileStorage(path, defaultURL string) *FileStorage {
	return &FileStorage{
		path:       path,
		defaultURL: defaultURL,
	}
}

func (c *FileStorage) Load(ctx context.Context) (*Config, error) {
	c.mu.RLock()
	data, err := os.ReadFile(c.path)
	c.mu.RUnlock()

	if os.IsNotExist(err) {
		log.FromCtx(ctx).Info().Str("path", c.path).Msg("mcp_config.json not found, creating default")

		config := DefaultConfig(c.defaultURL)
		if err := c.Save(ctx, config); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mcp config: %w", err)
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse mcp config: %w", err)
	}
	if len(config.MCPServers) == 0 {
		return DefaultConfig(c.defaultURL), nil
	}
	return config, nil
}

func (c *FileStorage) Save(ctx context.Context, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
