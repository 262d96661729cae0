package core

import (
	"bytes"
	"encoding/json"
)

const (
	AppName          = "Asistente Universitario"
	AppUserAgent     = "Asistente-Universitario/0.1"
	AppRepositoryURL = "https://github.com/raulmendoza21/Asistente-Universidad-Personal"
	AppVersion       = "0.1.0"

	// ToolServerName is the name the tool server announces to MCP clients.
	ToolServerName = "universidad"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

type FunctionCall struct {
	Name      string    `json:"name"`
	Arguments Arguments `json:"arguments"`
}

// Arguments is the raw argument text of a tool call. Some OpenAI-compatible
// servers send an object instead of a string, both are accepted on decode.
type Arguments string

func (a *Arguments) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = Arguments(s)
		return nil
	}
	*a = Arguments(trimmed)
	return nil
}

func (a Arguments) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ChatRequest is one chat-completion call: the full message list plus the
// operation catalogue and sampling settings.
type ChatRequest struct {
	Messages    []Message
	Tools       []Tool
	ToolChoice  string
	MaxTokens   int
	Temperature float64
}
