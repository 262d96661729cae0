package config

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

type MCPConfig struct {
	Host string `env:"MCP_HOST" envDefault:"localhost"`
	Port int    `env:"MCP_PORT" envDefault:"8000"`
	// URL is where the chat client reaches the tool server. Empty derives it from Port.
	URL string `env:"MCP_URL"`

	// Requests per minute per client address, and the allowed burst.
	RateLimit int `env:"MCP_RATE_LIMIT" envDefault:"120"`
	RateBurst int `env:"MCP_RATE_BURST" envDefault:"20"`

	ConnectTimeout time.Duration `env:"MCP_CONNECT_TIMEOUT" envDefault:"30s"`
	CallTimeout    time.Duration `env:"MCP_CALL_TIMEOUT" envDefault:"2m"`
}

func NewMCPConfig(ctx context.Context) *MCPConfig {
	c := &MCPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse MCP config")
	}
	return c
}

func (c MCPConfig) GetURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("http://localhost:%d/mcp", c.Port)
}

func (c MCPConfig) GetListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
