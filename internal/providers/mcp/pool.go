package mcp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	mcpproto "github.com/mark3labs/mcp-go/mcp"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

// ConnectionPool keeps one connection per tool server and the catalogue of
// the tools they own.
type ConnectionPool interface {
	// Add connects name and returns the tools it now owns. A server already
	// under that name is replaced together with its tools.
	Add(ctx context.Context, name string, cfg ServerConfig) ([]string, error)
	// Del disconnects name and forgets its tools.
	Del(name string) error
	// Call runs tool on the server that owns it.
	Call(ctx context.Context, tool string, args map[string]any) (*mcpproto.CallToolResult, error)
	Tools() []core.Tool
	Close() error
}

var _ ConnectionPool = (*Pool)(nil)

// TransportFactory picks the connect function for a transport type.
type TransportFactory func(TransportType) (Transport, error)

type Pool struct {
	mu      sync.RWMutex
	servers map[string]*serverConn
	catalog *Catalog
	factory TransportFactory
}

func NewPool() *Pool {
	return NewPoolWithFactory(NewTransport)
}

func NewPoolWithFactory(factory TransportFactory) *Pool {
	return &Pool{
		servers: make(map[string]*serverConn),
		catalog: NewCatalog(),
		factory: factory,
	}
}

// Add dials the server outside the lock, then swaps it in. Tool names
// already owned by another server stay with that server.
func (p *Pool) Add(ctx context.Context, name string, cfg ServerConfig) ([]string, error) {
	conn, err := dial(ctx, name, cfg, p.factory)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	old := p.servers[name]
	p.servers[name] = conn
	p.catalog.Drop(name)

	owned := make([]string, 0, len(conn.tools))
	for _, tool := range conn.tools {
		if p.catalog.Add(name, tool) {
			owned = append(owned, tool.Name)
			continue
		}
		owner, _ := p.catalog.Owner(tool.Name)
		log.FromCtx(ctx).Warn().
			Str("tool", tool.Name).
			Str("server", name).
			Str("owner", owner).
			Msg("duplicate mcp tool ignored")
	}
	p.mu.Unlock()

	if old != nil {
		if err := old.close(); err != nil {
			log.FromCtx(ctx).Debug().Err(err).Str("server", name).Msg("close replaced mcp server")
		}
	}
	return owned, nil
}

// Del disconnects name. Its tools are not handed to other servers that
// listed the same names; those servers must be added again.
func (p *Pool) Del(name string) error {
	p.mu.Lock()
	conn, exists := p.servers[name]
	delete(p.servers, name)
	p.catalog.Drop(name)
	p.mu.Unlock()

	if !exists {
		return nil
	}
	return conn.close()
}

func (p *Pool) Call(ctx context.Context, tool string, args map[string]any) (*mcpproto.CallToolResult, error) {
	p.mu.RLock()
	owner, ok := p.catalog.Owner(tool)
	conn := p.servers[owner]
	p.mu.RUnlock()

	if !ok || conn == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	return conn.call(ctx, tool, args)
}

// Tools returns the catalogue in discovery order.
func (p *Pool) Tools() []core.Tool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.catalog.Tools()
}

func (p *Pool) Close() error {
	p.mu.Lock()
	servers := p.servers
	p.servers = make(map[string]*serverConn)
	p.catalog = NewCatalog()
	p.mu.Unlock()

	var errs []error
	for _, conn := range servers {
		if err := conn.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
