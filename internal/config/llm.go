package config

import (
	"fmt"
	"time"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type LLMConfig struct {
	Provider  string
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
}

// OpenAIConfig подходит для любого OpenAI-совместимого endpoint
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	HTTPTimeout time.Duration
}

type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// Validate проверяет корректность конфигурации модели и политики вызовов
func (c *AppConfig) Validate() error {
	if err := c.LLM.ValidateConfig(); err != nil {
		return err
	}

	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be positive")
	}

	if c.Gateway.Retries < 0 {
		return fmt.Errorf("GATEWAY_RETRIES must not be negative")
	}

	return nil
}

// ValidateConfig проверяет, что для выбранного провайдера заданы ключ и модель
func (c *LLMConfig) ValidateConfig() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
		if c.OpenAI.Model == "" {
			return fmt.Errorf("OPENAI_MODEL is required")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
		if c.Anthropic.MaxTokens <= 0 {
			return fmt.Errorf("ANTHROPIC_MAX_TOKENS must be positive")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	return nil
}

// GetModelInfo возвращает информацию о используемой модели
func (c *LLMConfig) GetModelInfo() map[string]interface{} {
	switch c.Provider {
	case ProviderAnthropic:
		return map[string]interface{}{
			"provider":   "Anthropic",
			"model":      c.Anthropic.Model,
			"max_tokens": c.Anthropic.MaxTokens,
		}
	default:
		return map[string]interface{}{
			"provider": "OpenAI",
			"model":    c.OpenAI.Model,
			"base_url": c.OpenAI.BaseURL,
		}
	}
}
