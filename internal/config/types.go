package config

// InterviewConfig содержит настройки генерации, читаемые из YAML
type InterviewConfig struct {
	QuestionTemperature float64 `yaml:"question_temperature"`
	DecisionTemperature float64 `yaml:"decision_temperature"`
	FeedbackTemperature float64 `yaml:"feedback_temperature"`
	QuestionWordLimit   int     `yaml:"question_word_limit"`
}

// DefaultInterviewConfig возвращает значения, с которыми работает сервис без YAML файла.
// Вопросы генерируются почти детерминированно, JSON-вызовы — с умеренной температурой.
func DefaultInterviewConfig() *InterviewConfig {
	return &InterviewConfig{
		QuestionTemperature: 0.2,
		DecisionTemperature: 0.5,
		FeedbackTemperature: 0.5,
		QuestionWordLimit:   60,
	}
}
