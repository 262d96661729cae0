package mcp

import (
	"encoding/json"
	"sync"

	mcpproto "github.com/mark3labs/mcp-go/mcp"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

// Catalog routes tool names to the server that published them. The first
// server to publish a name owns it.
type Catalog struct {
	mu     sync.RWMutex
	order  []string
	tools  map[string]core.Tool
	owners map[string]string
}

func NewCatalog() *Catalog {
	return &Catalog{
		tools:  make(map[string]core.Tool),
		owners: make(map[string]string),
	}
}

// Add records tool under server. It reports false when another server
// already owns the name.
func (c *Catalog) Add(server string, tool mcpproto.Tool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if owner, exists := c.owners[tool.Name]; exists && owner != server {
		return false
	}
	if _, exists := c.tools[tool.Name]; !exists {
		c.order = append(c.order, tool.Name)
	}

	c.owners[tool.Name] = server
	c.tools[tool.Name] = core.Tool{
		Type: "function",
		Function: core.Function{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toolSchema(tool),
		},
	}
	return true
}

func (c *Catalog) Owner(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	server, ok := c.owners[name]
	return server, ok
}

// Tools returns the catalogue in discovery order.
func (c *Catalog) Tools() []core.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tools := make([]core.Tool, 0, len(c.order))
	for _, name := range c.order {
		tools = append(tools, c.tools[name])
	}
	return tools
}

// Drop forgets every tool owned by server.
func (c *Catalog) Drop(server string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, name := range c.order {
		if c.owners[name] == server {
			delete(c.owners, name)
			delete(c.tools, name)
			continue
		}
		kept = append(kept, name)
	}
	c.order = kept
}

func toolSchema(tool mcpproto.Tool) json.RawMessage {
	if len(tool.RawInputSchema) > 0 {
		return tool.RawInputSchema
	}
	schema := tool.InputSchema
	if schema.Type == "" {
		schema.Type = "object"
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return data
}
