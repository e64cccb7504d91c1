package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"interview-practice/internal/config"
)

type OpenAIGateway struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Compile-time check
var _ Gateway = (*OpenAIGateway)(nil)

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Message message `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
}

// NewOpenAIGateway создает клиент для OpenAI-совместимого chat completions API.
// HTTP клиент ограничен собственным таймаутом, независимо от таймаута оркестратора.
func NewOpenAIGateway(cfg config.OpenAIConfig) *OpenAIGateway {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIGateway{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *OpenAIGateway) Generate(ctx context.Context, req Request) (string, error) {
	reqBody := chatRequest{
		Model: g.model,
		Messages: []message{
			{
				Role:    "user",
				Content: req.Prompt,
			},
		},
		Temperature: req.Temperature,
	}
	if req.Mode == ModeJSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenAI API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("OpenAI API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI API")
	}

	content := chatResp.Choices[0].Message.Content
	if req.Mode == ModeJSON {
		content = cleanJSONResponse(content)
	}

	return content, nil
}

// cleanJSONResponse снимает markdown-ограду вокруг ответа.
// Тройные кавычки внутри ответа, например в строковых значениях JSON, не трогаются.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, "```") || !strings.HasSuffix(response, "```") || len(response) < 6 {
		return response
	}

	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimPrefix(response, "json")

	return strings.TrimSpace(response)
}
