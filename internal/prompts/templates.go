package prompts

import "fmt"

// DefaultQuestionWordLimit — ограничение длины вопроса по умолчанию
const DefaultQuestionWordLimit = 60

const questionTemplate = `You are an interviewer for the role: %s.
Difficulty: %s.
Produce a single interview question (type either technical or behavioral) and label it.
Return only the question text. Keep under %d words.`

const followupDecisionTemplate = `User answer: """%s"""
Question: """%s"""
Instruction: Decide if a follow-up question is needed to better evaluate the candidate. If yes, output strict JSON:
{"follow_up":"yes","follow_up_question":"...","reason":"short reason"}
If not needed, output: {"follow_up":"no"}
Return only JSON.
`

const feedbackTemplate = `Session history:
%s
Instruction: Score the candidate 0-10 in three categories: Communication, Technical Knowledge, Problem Solving.
For each category return: score (0-10), one-sentence reason, and two short actionable suggestions.
Output strict JSON of the shape: {"communication":{...},"technical":{...},"problem_solving":{...},"summary":"..."}
Keep the JSON parseable and concise.
`

// BuildQuestionPrompt создает промпт для генерации одного вопроса.
// Роль и сложность подставляются как есть, без экранирования.
func BuildQuestionPrompt(role, difficulty string, wordLimit int) string {
	if wordLimit <= 0 {
		wordLimit = DefaultQuestionWordLimit
	}
	return fmt.Sprintf(questionTemplate, role, difficulty, wordLimit)
}

// BuildFollowupDecisionPrompt создает промпт для решения о уточняющем вопросе
func BuildFollowupDecisionPrompt(question, answer string) string {
	return fmt.Sprintf(followupDecisionTemplate, answer, question)
}

// BuildFeedbackPrompt создает промпт итоговой оценки по расшифровке сессии
func BuildFeedbackPrompt(transcript string) string {
	return fmt.Sprintf(feedbackTemplate, transcript)
}
