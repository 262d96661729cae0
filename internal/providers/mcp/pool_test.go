package mcp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/service/registry"
)

// serving connects every dial to s.
func serving(s *server.MCPServer) TransportFactory {
	return inProcessFactory(map[string]*server.MCPServer{"": s})("")
}

func toolServer(names ...string) *server.MCPServer {
	reg := registry.New()
	for _, name := range names {
		reg.Register(name, func(context.Context) (any, error) { return name, nil }, "", nil)
	}
	return NewServer(reg)
}

func toolNames(tools []core.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Function.Name)
	}
	return names
}

func TestPool_AddPublishesTools(t *testing.T) {
	pool := NewPoolWithFactory(serving(NewServer(testRegistry())))
	t.Cleanup(func() { _ = pool.Close() })
	ctx := context.Background()

	owned, err := pool.Add(ctx, "universidad", ServerConfig{URL: testURL})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"consultar_aula", "saludar", "fallar"}, owned)
	assert.ElementsMatch(t, owned, toolNames(pool.Tools()))

	res, err := pool.Call(ctx, "saludar", nil)
	require.NoError(t, err)
	assert.Equal(t, "hola", joinText(res.Content))

	_, err = pool.Call(ctx, "no_existe", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestPool_DelForgetsTools(t *testing.T) {
	pool := NewPoolWithFactory(serving(toolServer("uno", "dos")))
	ctx := context.Background()

	_, err := pool.Add(ctx, "a", ServerConfig{URL: testURL})
	require.NoError(t, err)
	conn := pool.servers["a"]

	require.NoError(t, pool.Del("a"))
	assert.True(t, conn.isClosed())
	assert.Empty(t, pool.Tools())

	_, err = pool.Call(ctx, "uno", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)

	assert.NoError(t, pool.Del("missing"))
}

func TestPool_ReplaceRefreshesTools(t *testing.T) {
	versions := inProcessFactory(map[string]*server.MCPServer{
		"v1": toolServer("uno", "dos"),
		"v2": toolServer("tres"),
	})
	pool := NewPoolWithFactory(versions("v1"))
	ctx := context.Background()

	_, err := pool.Add(ctx, "universidad", ServerConfig{URL: testURL})
	require.NoError(t, err)
	first := pool.servers["universidad"]

	pool.factory = versions("v2")
	owned, err := pool.Add(ctx, "universidad", ServerConfig{URL: testURL})
	require.NoError(t, err)

	assert.Equal(t, []string{"tres"}, owned)
	assert.Equal(t, []string{"tres"}, toolNames(pool.Tools()))
	assert.True(t, first.isClosed())

	_, err = pool.Call(ctx, "uno", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
	res, err := pool.Call(ctx, "tres", nil)
	require.NoError(t, err)
	assert.Equal(t, "tres", joinText(res.Content))
}

func TestPool_FirstServerKeepsSharedName(t *testing.T) {
	pool := &namedPool{Pool: NewPool(), factory: inProcessFactory(map[string]*server.MCPServer{
		"a": toolServer("saludar", "uno"),
		"b": toolServer("saludar", "dos"),
	})}
	ctx := context.Background()

	owned, err := pool.Add(ctx, "a", ServerConfig{URL: testURL})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"saludar", "uno"}, owned)

	owned, err = pool.Add(ctx, "b", ServerConfig{URL: testURL})
	require.NoError(t, err)
	assert.Equal(t, []string{"dos"}, owned)

	require.NoError(t, pool.Del("a"))
	assert.Equal(t, []string{"dos"}, toolNames(pool.Tools()))

	owned, err = pool.Add(ctx, "b", ServerConfig{URL: testURL})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"saludar", "dos"}, owned)
}

func TestPool_AddErrors(t *testing.T) {
	failing := func(TransportType) (Transport, error) {
		return func(context.Context, ServerConfig) (*client.Client, error) {
			return nil, errors.New("dial refused")
		}, nil
	}
	unsupported := func(TransportType) (Transport, error) {
		return nil, errors.New("unsupported")
	}
	// A server without tool capabilities rejects tools/list.
	bare := serving(server.NewMCPServer("bare", "0.0.0"))

	tests := []struct {
		name    string
		factory TransportFactory
		cfg     ServerConfig
	}{
		{name: "invalid config", factory: serving(toolServer("uno")), cfg: ServerConfig{}},
		{name: "unsupported transport", factory: unsupported, cfg: ServerConfig{URL: testURL}},
		{name: "transport failure", factory: failing, cfg: ServerConfig{URL: testURL}},
		{name: "tool listing fails", factory: bare, cfg: ServerConfig{URL: testURL}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPoolWithFactory(tt.factory)
			_, err := pool.Add(context.Background(), "x", tt.cfg)
			assert.Error(t, err)
			assert.Empty(t, pool.servers)
			assert.Empty(t, pool.Tools())
		})
	}
}

func TestPool_Close(t *testing.T) {
	pool := &namedPool{Pool: NewPool(), factory: inProcessFactory(map[string]*server.MCPServer{
		"a": toolServer("uno"),
		"b": toolServer("dos"),
		"c": toolServer("tres"),
	})}
	ctx := context.Background()

	var conns []*serverConn
	for _, name := range []string{"a", "b", "c"} {
		_, err := pool.Add(ctx, name, ServerConfig{URL: testURL})
		require.NoError(t, err)
		conns = append(conns, pool.servers[name])
	}

	require.NoError(t, pool.Close())
	assert.Empty(t, pool.servers)
	assert.Empty(t, pool.Tools())
	for _, conn := range conns {
		assert.True(t, conn.isClosed())
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	pool := NewPoolWithFactory(serving(toolServer("uno")))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Add(ctx, "universidad", ServerConfig{URL: testURL})
			_, _ = pool.Call(ctx, "uno", nil)
			pool.Tools()
		}()
	}
	wg.Wait()

	assert.Len(t, pool.servers, 1)
	assert.Equal(t, []string{"uno"}, toolNames(pool.Tools()))
	require.NoError(t, pool.Close())
}

func TestServerConn_CallAfterClose(t *testing.T) {
	conn, err := dial(context.Background(), "x", ServerConfig{URL: testURL}, serving(toolServer("uno")))
	require.NoError(t, err)
	require.Len(t, conn.tools, 1)

	require.NoError(t, conn.close())
	require.NoError(t, conn.close())

	_, err = conn.call(context.Background(), "uno", nil)
	assert.ErrorIs(t, err, errServerClosed)
}
