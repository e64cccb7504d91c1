package interviewer

import (
	"encoding/json"
	"strings"
)

// Feedback — итоговая оценка в том виде, в каком ее вернула модель.
// Валидный JSON передается без изменений, иначе сохраняется исходный текст.
// Диапазоны оценок и обязательные поля здесь не проверяются.
type Feedback struct {
	JSON json.RawMessage
	Raw  string
}

// ParseFeedback оборачивает ответ модели без какой-либо валидации структуры
func ParseFeedback(raw string) Feedback {
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return Feedback{JSON: json.RawMessage(trimmed)}
	}
	return Feedback{Raw: raw}
}

// Structured сообщает, удалось ли разобрать ответ как JSON
func (f Feedback) Structured() bool {
	return f.JSON != nil
}

func (f Feedback) MarshalJSON() ([]byte, error) {
	if f.Structured() {
		return f.JSON, nil
	}
	return json.Marshal(f.Raw)
}
