package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"interview-practice/internal/config"
	"interview-practice/internal/schema"
)

// outputToolName — скрытый инструмент, через который Anthropic API возвращает JSON
const outputToolName = "structured_output"

type AnthropicGateway struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

var _ Gateway = (*AnthropicGateway)(nil)

// NewAnthropicGateway создает Gateway поверх Anthropic Messages API.
// Дополнительные опции клиента (base URL, retries) применяются после ключа.
func NewAnthropicGateway(cfg config.AnthropicConfig, opts ...option.RequestOption) *AnthropicGateway {
	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	return &AnthropicGateway{
		client:    anthropic.NewClient(clientOpts...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (g *AnthropicGateway) Generate(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(clampTemperature(req.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.Mode == ModeJSON {
		injectOutputTool(&params, req.Schema)
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	return messageOutput(msg, req.Mode)
}

// injectOutputTool добавляет скрытый инструмент со схемой ответа и принуждает модель его вызвать.
// Без схемы модель получает свободный объект.
func injectOutputTool(params *anthropic.MessageNewParams, s *schema.Schema) {
	input := anthropic.ToolInputSchemaParam{
		Properties: map[string]any{},
	}
	if s != nil {
		input.Properties = s.Properties
		input.Required = s.Required
	}

	params.Tools = append(params.Tools, anthropic.ToolUnionParam{
		OfTool: &anthropic.ToolParam{
			Name:        outputToolName,
			Description: param.NewOpt("Return structured output matching the schema"),
			InputSchema: input,
		},
	})
	params.ToolChoice = anthropic.ToolChoiceParamOfTool(outputToolName)
}

// messageOutput достает вход скрытого инструмента, а если его нет — склеенный текст ответа
func messageOutput(msg *anthropic.Message, mode Mode) (string, error) {
	var text strings.Builder
	for _, block := range msg.Content {
		switch block.Type {
		case "tool_use":
			if block.Name == outputToolName {
				return string(block.Input), nil
			}
		case "text":
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text or structured output")
	}
	if mode == ModeJSON {
		return cleanJSONResponse(text.String()), nil
	}
	return strings.TrimSpace(text.String()), nil
}

// Anthropic принимает температуру только в диапазоне [0, 1]
func clampTemperature(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
