package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com"
	anthropicMaxTokens = 1024
)

type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(baseURL, apiKey, model string, timeout time.Duration) *Anthropic {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (a *Anthropic) Chat(ctx context.Context, req core.ChatRequest) (core.Message, error) {
	messages, system := toAnthropicMessages(req.Messages)

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		Messages:  messages,
		MaxTokens: maxTokens,
	}
	if len(system) > 0 {
		params.System = system
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if len(req.Tools) > 0 {
		params.Tools = toAnthropicTools(req.Tools)
		if req.ToolChoice == "auto" {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{OfAuto: &anthropic.ToolChoiceAutoParam{}}
		}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return core.Message{}, fromAnthropicError(err)
	}

	msg := core.Message{Role: core.RoleAssistant}
	var text strings.Builder
	for _, block := range resp.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
				ID:   b.ID,
				Type: "function",
				Function: core.FunctionCall{
					Name:      b.Name,
					Arguments: core.Arguments(b.Input),
				},
			})
		}
	}
	msg.Content = text.String()
	return msg, nil
}

func (a *Anthropic) Models(ctx context.Context) ([]core.Model, error) {
	page, err := a.client.Models.List(ctx, anthropic.ModelListParams{
		Limit: anthropic.Int(1000),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", fromAnthropicError(err))
	}

	models := make([]core.Model, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, core.Model{ID: m.ID, Name: m.DisplayName})
	}
	return models, nil
}

// toAnthropicMessages splits out system text and folds consecutive tool
// results into a single user turn, as the Messages API requires.
func toAnthropicMessages(history []core.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var system []anthropic.TextBlockParam
	out := make([]anthropic.MessageParam, 0, len(history))

	for _, m := range history {
		switch m.Role {
		case core.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})

		case core.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, toolInput(tc.Function.Arguments), tc.Function.Name))
			}
			if len(blocks) == 0 {
				continue
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))

		case core.RoleTool:
			block := anthropic.NewToolResultBlock(m.ToolCallID, m.Content, false)
			if n := len(out); n > 0 && out[n-1].Role == anthropic.MessageParamRoleUser && isToolResults(out[n-1]) {
				out[n-1].Content = append(out[n-1].Content, block)
				continue
			}
			out = append(out, anthropic.NewUserMessage(block))

		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out, system
}

func isToolResults(m anthropic.MessageParam) bool {
	for _, b := range m.Content {
		if b.OfToolResult == nil {
			return false
		}
	}
	return len(m.Content) > 0
}

func toolInput(args core.Arguments) map[string]any {
	input := map[string]any{}
	if args != "" {
		_ = json.Unmarshal([]byte(args), &input)
	}
	return input
}

func toAnthropicTools(tools []core.Tool) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		var schema struct {
			Properties map[string]any `json:"properties"`
			Required   []string       `json:"required"`
		}
		_ = json.Unmarshal(t.Function.Parameters, &schema)

		input := anthropic.ToolInputSchemaParam{Properties: schema.Properties}
		if input.Properties == nil {
			input.Properties = map[string]any{}
		}
		if len(schema.Required) > 0 {
			input.Required = schema.Required
		}

		tool := anthropic.ToolUnionParamOfTool(input, t.Function.Name)
		if t.Function.Description != "" {
			tool.OfTool.Description = anthropic.String(t.Function.Description)
		}
		out = append(out, tool)
	}
	return out
}

func fromAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Code: apiErr.StatusCode, Err: err}
	}
	return err
}
