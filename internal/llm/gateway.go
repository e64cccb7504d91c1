// Package llm описывает границу с языковой моделью и ее реализации.
package llm

import (
	"context"
	"fmt"

	"interview-practice/internal/config"
	"interview-practice/internal/schema"
)

// Mode определяет, в каком виде модель должна вернуть ответ
type Mode int

const (
	ModeText Mode = iota
	ModeJSON
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeJSON:
		return "json"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Request — один вызов модели
type Request struct {
	Prompt      string
	Mode        Mode
	Temperature float64
	// Schema — желаемая форма JSON ответа. Реализации могут ее игнорировать.
	Schema *schema.Schema
}

// Gateway вызывает модель и возвращает ее ответ текстом.
// В режиме ModeJSON текст должен быть JSON, но гарантий нет: разбор делает вызывающая сторона.
// Реализации обязаны уважать отмену ctx.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Func позволяет использовать обычную функцию как Gateway
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// New создает Gateway для провайдера из конфигурации
func New(cfg config.LLMConfig) (Gateway, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIGateway(cfg.OpenAI), nil
	case config.ProviderAnthropic:
		return NewAnthropicGateway(cfg.Anthropic), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
