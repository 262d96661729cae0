package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

const (
	TransportLocal = "local"
	TransportMCP   = "mcp"
)

type AppConfig struct {
	RuntimePath string `env:"ASISTENTE_RUNTIME_PATH" envDefault:".asistente"`
	DataDir     string `env:"ASISTENTE_DATA_DIR"`
	TimeZone    string `env:"TIMEZONE" envDefault:"UTC"`

	// Conversation loop
	MaxTurns        int    `env:"ASISTENTE_MAX_TURNS" envDefault:"10"`
	ToolResultRole  string `env:"ASISTENTE_TOOL_RESULT_ROLE" envDefault:"user"`
	ToolParallelism int    `env:"ASISTENTE_TOOL_PARALLELISM" envDefault:"1"`

	// Where operations run: in process, or on a remote MCP tool server.
	ToolTransport string `env:"ASISTENTE_TOOL_TRANSPORT" envDefault:"local"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(c.RuntimePath, "data")
}

func (c AppConfig) GetSystemPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c AppConfig) GetTimeZone() string {
	return c.TimeZone
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) GetMCPConfigPath() string {
	return filepath.Join(c.RuntimePath, "mcp_config.json")
}

func (c AppConfig) IsRemoteTransport() bool {
	return c.ToolTransport == TransportMCP
}

// GetToolResultRole returns the role used for tool results, user unless tool is set.
func (c AppConfig) GetToolResultRole() string {
	if c.ToolResultRole == core.RoleTool {
		return core.RoleTool
	}
	return core.RoleUser
}
