package mcp

import (
	"fmt"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

type TransportType string

const (
	TransportHTTP  TransportType = "http"
	TransportStdio TransportType = "stdio"
)

// Config is the content of mcp_config.json: the tool servers the chat
// client forwards operations to.
type Config struct {
	MCPServers map[string]ServerConfig `json:"mcpServers"`
}

// ServerConfig is one entry of mcp_config.json.
type ServerConfig struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// DefaultConfig points at the university tool server started by `asistente serve`.
func DefaultConfig(url string) *Config {
	return &Config{
		MCPServers: map[string]ServerConfig{
			core.ToolServerName: {URL: url},
		},
	}
}

func (c *ServerConfig) GetTransport() (TransportType, error) {
	if c.URL != "" {
		return TransportHTTP, nil
	}
	if c.Command != "" {
		return TransportStdio, nil
	}
	return "", fmt.Errorf("invalid config: neither url nor command provided")
}
