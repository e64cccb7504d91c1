package interviewer

import (
	"encoding/json"
	"strings"
)

// Decision — разобранный ответ модели на вопрос "нужно ли уточнение".
// Возможные варианты: FollowUp, NoFollowUp, Unparsed.
type Decision interface {
	isDecision()
}

// FollowUp — модель просит задать уточняющий вопрос
type FollowUp struct {
	Question string
	Reason   string
}

// NoFollowUp — модель решила, что уточнение не нужно
type NoFollowUp struct{}

// Unparsed — ответ модели не удалось разобрать
type Unparsed struct {
	Raw string
}

func (FollowUp) isDecision()   {}
func (NoFollowUp) isDecision() {}
func (Unparsed) isDecision()   {}

// ParseDecision разбирает ответ модели. Уточнение засчитывается только при
// follow_up == "yes" и непустом follow_up_question; любой JSON-объект без этого — NoFollowUp,
// все остальное — Unparsed.
func ParseDecision(raw string) Decision {
	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil || payload == nil {
		return Unparsed{Raw: raw}
	}

	if payload["follow_up"] != "yes" {
		return NoFollowUp{}
	}

	question, ok := payload["follow_up_question"].(string)
	if !ok || strings.TrimSpace(question) == "" {
		return Unparsed{Raw: raw}
	}

	reason, _ := payload["reason"].(string)

	return FollowUp{
		Question: strings.TrimSpace(question),
		Reason:   reason,
	}
}

// FollowupResult — ответ SubmitAnswer. FollowUp равен nil, если уточнения нет.
type FollowupResult struct {
	FollowUp *string `json:"follow_up"`
	Reason   *string `json:"reason,omitempty"`
}
