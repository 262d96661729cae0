package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const openAIBaseURL = "https://api.openai.com/v1/"

// OpenAI is backed by the official SDK. Retries belong to Resilient, so the
// SDK's own retry loop is disabled.
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration) *OpenAI {
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *OpenAI) Chat(ctx context.Context, req core.ChatRequest) (core.Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: toOpenAIMessages(req.Messages),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if len(req.Tools) > 0 {
		params.Tools = toOpenAITools(req.Tools)
		if req.ToolChoice != "" {
			params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
				OfAuto: openai.String(req.ToolChoice),
			}
		}
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return core.Message{}, fromOpenAIError(err)
	}
	if len(completion.Choices) == 0 {
		return core.Message{}, fmt.Errorf("empty choices")
	}

	choice := completion.Choices[0].Message
	msg := core.Message{
		Role:    core.RoleAssistant,
		Content: choice.Content,
	}
	for _, tc := range choice.ToolCalls {
		if tc.Type != "" && tc.Type != "function" {
			continue
		}
		msg.ToolCalls = append(msg.ToolCalls, core.ToolCall{
			ID:   tc.ID,
			Type: "function",
			Function: core.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: core.Arguments(tc.Function.Arguments),
			},
		})
	}
	return msg, nil
}

func (o *OpenAI) Models(ctx context.Context) ([]core.Model, error) {
	page, err := o.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", fromOpenAIError(err))
	}

	models := make([]core.Model, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, core.Model{ID: m.ID, Name: m.ID})
	}
	return models, nil
}

func toOpenAIMessages(history []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case core.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				assistant.Content.OfString = openai.String(m.Content)
			}
			for _, tc := range m.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Function.Name,
							Arguments: string(tc.Function.Arguments),
						},
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		case core.RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func toOpenAITools(tools []core.Tool) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		var params openai.FunctionParameters
		if len(t.Function.Parameters) > 0 {
			_ = json.Unmarshal(t.Function.Parameters, &params)
		}
		def := openai.FunctionDefinitionParam{
			Name:       t.Function.Name,
			Parameters: params,
		}
		if t.Function.Description != "" {
			def.Description = openai.String(t.Function.Description)
		}
		out = append(out, openai.ChatCompletionFunctionTool(def))
	}
	return out
}

func fromOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Code: apiErr.StatusCode, Err: err}
	}
	return err
}
