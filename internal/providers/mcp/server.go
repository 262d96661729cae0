package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/config"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/registry"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/srv"
)

const (
	EndpointPath = "/mcp"

	serverInstructions = "Herramientas del asistente universitario: horarios, profesores, aulas, tareas y calendario."
)

var _ srv.Service = (*HTTPServer)(nil)

// NewServer publishes every operation of ops as an MCP tool.
func NewServer(ops core.Operations) *server.MCPServer {
	s := server.NewMCPServer(
		core.ToolServerName,
		core.AppVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	for _, tool := range ops.Tools() {
		name := tool.Function.Name
		s.AddTool(
			mcpproto.NewToolWithRawSchema(name, tool.Function.Description, tool.Function.Parameters),
			dispatchHandler(ops, name),
		)
	}
	return s
}

func dispatchHandler(ops core.Operations, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		result, err := ops.Dispatch(ctx, name, req.GetArguments())
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("tool", name).Msg("tool call failed")
			return mcpproto.NewToolResultError(operationMessage(err)), nil
		}

		text, err := encodeResult(result)
		if err != nil {
			return mcpproto.NewToolResultError(err.Error()), nil
		}
		return mcpproto.NewToolResultText(text), nil
	}
}

// operationMessage strips the registry prefix; the calling side adds its own.
func operationMessage(err error) string {
	var opErr *registry.OperationError
	if errors.As(err, &opErr) {
		return opErr.Err.Error()
	}
	return err.Error()
}

func encodeResult(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// HTTPServer serves the tool server over MCP streamable HTTP.
type HTTPServer struct {
	config *config.MCPConfig
	mcp    *server.MCPServer

	mu     sync.Mutex
	server *http.Server
}

func NewHTTPServer(cfg *config.MCPConfig, ops core.Operations) *HTTPServer {
	return &HTTPServer{
		config: cfg,
		mcp:    NewServer(ops),
	}
}

// Handler is the rate-limited endpoint mux. The limiter janitor stops with ctx.
func (s *HTTPServer) Handler(ctx context.Context) http.Handler {
	streamable := server.NewStreamableHTTPServer(
		s.mcp,
		server.WithStateLess(true),
		server.WithEndpointPath(EndpointPath),
	)

	mux := http.NewServeMux()
	mux.Handle(EndpointPath, RateLimit(ctx, s.config.RateLimit, s.config.RateBurst)(streamable))
	return mux
}

func (s *HTTPServer) Start(ctx context.Context) error {
	addr := s.config.GetListenAddr()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.mu.Lock()
	s.server = httpServer
	s.mu.Unlock()

	log.FromCtx(ctx).Info().Str("addr", listener.Addr().String()).Str("path", EndpointPath).Msg("tool server listening")

	if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.server
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}
	return httpServer.Shutdown(ctx)
}
