package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	mcpproto "github.com/mark3labs/mcp-go/mcp"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

var (
	ErrNoServers   = errors.New("no mcp server reachable")
	ErrUnknownTool = errors.New("tool not published by any mcp server")
)

var _ core.Operations = (*Remote)(nil)

// Registrar receives remote operations. It matches the registry's Register.
type Registrar interface {
	Register(name string, target any, description string, schema json.RawMessage)
}

// Remote forwards operations to the tool servers listed in mcp_config.json.
type Remote struct {
	pool           ConnectionPool
	connectTimeout time.Duration
	callTimeout    time.Duration
}

func NewRemote(pool ConnectionPool, connectTimeout, callTimeout time.Duration) *Remote {
	return &Remote{
		pool:           pool,
		connectTimeout: connectTimeout,
		callTimeout:    callTimeout,
	}
}

// Connect dials every configured server and lists its tools. Servers that
// fail are logged and skipped; it fails only when none connect.
func (r *Remote) Connect(ctx context.Context, cfg *Config) error {
	logger := log.FromCtx(ctx)

	names := make([]string, 0, len(cfg.MCPServers))
	for name := range cfg.MCPServers {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	connected := 0
	for _, name := range names {
		if err := r.connect(ctx, name, cfg.MCPServers[name]); err != nil {
			logger.Warn().Err(err).Str("server", name).Msg("mcp server unavailable")
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		connected++
	}

	if connected == 0 {
		return fmt.Errorf("%w: %w", ErrNoServers, errors.Join(errs...))
	}
	logger.Debug().Int("servers", connected).Int("tools", len(r.pool.Tools())).Msg("mcp tools loaded")
	return nil
}

func (r *Remote) connect(ctx context.Context, name string, cfg ServerConfig) error {
	ctx, cancel := r.withTimeout(ctx, r.connectTimeout)
	defer cancel()

	owned, err := r.pool.Add(ctx, name, cfg)
	if err != nil {
		return err
	}
	log.FromCtx(ctx).Debug().Str("server", name).Strs("tools", owned).Msg("mcp server connected")
	return nil
}

func (r *Remote) Tools() []core.Tool {
	return r.pool.Tools()
}

// Dispatch satisfies core.Operations by calling the tool on its server.
func (r *Remote) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	return r.Call(ctx, name, args)
}

// Call runs name on the server that owns it. Text content is joined; a JSON
// payload is returned as json.RawMessage so key order survives re-encoding.
func (r *Remote) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	ctx, cancel := r.withTimeout(ctx, r.callTimeout)
	defer cancel()

	res, err := r.pool.Call(ctx, name, args)
	if err != nil {
		return nil, err
	}

	text := joinText(res.Content)
	if res.IsError {
		return nil, errors.New(text)
	}
	if json.Valid([]byte(text)) {
		return json.RawMessage(text), nil
	}
	return text, nil
}

// RegisterInto publishes every remote tool in reg, each bound to Call.
func (r *Remote) RegisterInto(reg Registrar) int {
	tools := r.Tools()
	for _, tool := range tools {
		reg.Register(tool.Function.Name, &remoteOperation{remote: r, name: tool.Function.Name}, tool.Function.Description, tool.Function.Parameters)
	}
	return len(tools)
}

func (r *Remote) Close() error {
	return r.pool.Close()
}

func (r *Remote) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

type remoteOperation struct {
	remote *Remote
	name   string
}

func (o *remoteOperation) Call(ctx context.Context, args map[string]any) (any, error) {
	return o.remote.Call(ctx, o.name, args)
}

func joinText(content []mcpproto.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := mcpproto.AsTextContent(c); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
