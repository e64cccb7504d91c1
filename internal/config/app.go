package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Server              ServerConfig
	LLM                 LLMConfig
	Gateway             GatewayConfig
	ArchiveDir          string
	InterviewConfigPath string
}

type ServerConfig struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// GatewayConfig задает политику вызова модели на стороне оркестратора
type GatewayConfig struct {
	Timeout time.Duration // на одну попытку
	Retries int           // дополнительные попытки после первой
}

// LoadAppConfig загружает конфигурацию из окружения.
// Файл .env подхватывается, если он есть; его отсутствие не считается ошибкой.
func LoadAppConfig() *AppConfig {
	_ = godotenv.Load()

	return &AppConfig{
		Server: ServerConfig{
			Address:         getEnv("SERVER_ADDRESS", ":8000"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 3*time.Minute),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", ProviderOpenAI),
			OpenAI: OpenAIConfig{
				APIKey:      getEnv("OPENAI_API_KEY", ""),
				BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
				Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
				HTTPTimeout: getEnvAsDuration("GATEWAY_HTTP_TIMEOUT", 120*time.Second),
			},
			Anthropic: AnthropicConfig{
				APIKey:    getEnv("ANTHROPIC_API_KEY", ""),
				Model:     getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5"),
				MaxTokens: getEnvAsInt("ANTHROPIC_MAX_TOKENS", 1024),
			},
		},
		Gateway: GatewayConfig{
			Timeout: getEnvAsDuration("GATEWAY_TIMEOUT", 60*time.Second),
			Retries: getEnvAsInt("GATEWAY_RETRIES", 1),
		},
		ArchiveDir:          getEnv("ARCHIVE_DIR", ""),
		InterviewConfigPath: getEnv("INTERVIEW_CONFIG", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
