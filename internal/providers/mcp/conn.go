package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
)

var errServerClosed = errors.New("mcp server connection closed")

// serverConn is a live tool server together with the tools it listed when
// it was dialled.
type serverConn struct {
	name  string
	cli   *client.Client
	tools []mcpproto.Tool

	mu     sync.RWMutex
	closed bool
}

// dial opens the transport for cfg, runs the handshake and lists the tools.
func dial(ctx context.Context, name string, cfg ServerConfig, factory TransportFactory) (*serverConn, error) {
	tType, err := cfg.GetTransport()
	if err != nil {
		return nil, err
	}
	transport, err := factory(tType)
	if err != nil {
		return nil, err
	}

	cli, err := transport(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("transport creation failed: %w", err)
	}

	res, err := cli.ListTools(ctx, mcpproto.ListToolsRequest{})
	if err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("list tools: %w", err)
	}

	return &serverConn{name: name, cli: cli, tools: res.Tools}, nil
}

func (s *serverConn) call(ctx context.Context, tool string, args map[string]any) (*mcpproto.CallToolResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("%s: %w", s.name, errServerClosed)
	}

	req := mcpproto.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	res, err := s.cli.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", tool, s.name, err)
	}
	return res, nil
}

// close is idempotent. It waits for calls in flight.
func (s *serverConn) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.cli == nil {
		return nil
	}
	return s.cli.Close()
}

func (s *serverConn) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
