package interviewer

import "interview-practice/internal/schema"

// Формы JSON ответов модели. Используются только для подсказки схемы провайдеру,
// ответы по ним не валидируются.

type decisionShape struct {
	FollowUp         string `json:"follow_up" jsonschema:"enum=yes,enum=no,description=Whether a follow-up question is needed"`
	FollowUpQuestion string `json:"follow_up_question,omitempty" jsonschema:"description=The follow-up question when follow_up is yes"`
	Reason           string `json:"reason,omitempty" jsonschema:"description=Short reason for the decision"`
}

type categoryShape struct {
	Score       int      `json:"score" jsonschema:"minimum=0,maximum=10"`
	Reason      string   `json:"reason" jsonschema:"description=One-sentence reason"`
	Suggestions []string `json:"suggestions" jsonschema:"description=Two short actionable suggestions"`
}

type feedbackShape struct {
	Communication  categoryShape `json:"communication"`
	Technical      categoryShape `json:"technical"`
	ProblemSolving categoryShape `json:"problem_solving"`
	Summary        string        `json:"summary"`
}

var (
	decisionSchema = schema.Generate[decisionShape]()
	feedbackSchema = schema.Generate[feedbackShape]()
)
