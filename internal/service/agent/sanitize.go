package agent

import (
	"context"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

// sanitizeToolCalls drops tool messages that do not answer a tool call of
// the nearest preceding assistant message. Providers reject such orphans.
func sanitizeToolCalls(ctx context.Context, msgs []core.Message) []core.Message {
	var out []core.Message
	pending := map[string]bool{}

	for _, m := range msgs {
		switch m.Role {
		case core.RoleAssistant:
			pending = map[string]bool{}
			for _, tc := range m.ToolCalls {
				pending[tc.ID] = true
			}
		case core.RoleTool:
			if !pending[m.ToolCallID] {
				log.FromCtx(ctx).Warn().Str("tool_call_id", m.ToolCallID).Msg("dropping orphaned tool result")
				continue
			}
			delete(pending, m.ToolCallID)
		case core.RoleUser:
			pending = map[string]bool{}
		}
		out = append(out, m)
	}
	return out
}
