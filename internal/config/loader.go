package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load загружает конфигурацию интервью из YAML файла.
// Пустой путь означает значения по умолчанию; поля, которых нет в файле, тоже берутся по умолчанию.
func Load(filename string) (*InterviewConfig, error) {
	config := DefaultInterviewConfig()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	// Валидация конфигурации
	err = validateConfig(config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return config, nil
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *InterviewConfig) error {
	temperatures := map[string]float64{
		"question_temperature": config.QuestionTemperature,
		"decision_temperature": config.DecisionTemperature,
		"feedback_temperature": config.FeedbackTemperature,
	}
	for name, value := range temperatures {
		if value < 0 || value > 2 {
			return fmt.Errorf("%s должно быть в диапазоне от 0 до 2", name)
		}
	}

	if config.QuestionWordLimit <= 0 {
		return fmt.Errorf("question_word_limit должно быть больше 0")
	}

	return nil
}
