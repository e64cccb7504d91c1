package prompts

import (
	"fmt"
	"strings"

	"interview-practice/internal/session"
)

// NoAnswer подставляется вместо ответа, который еще не был получен
const NoAnswer = "(no answer)"

// Transcript разворачивает историю сессии в текст:
// Q{n}/A{n} для базовых вопросов и Q{n}.{m}/A{n}.{m} для уточнений, в порядке истории.
func Transcript(history []session.Turn) string {
	var b strings.Builder

	for i, turn := range history {
		n := i + 1
		writeLine(&b, fmt.Sprintf("Q%d: %s", n, turn.Question))
		writeLine(&b, fmt.Sprintf("A%d: %s", n, answerText(turn.Answer)))

		for j, fu := range turn.Followups {
			m := j + 1
			writeLine(&b, fmt.Sprintf("Q%d.%d: %s", n, m, fu.Question))
			writeLine(&b, fmt.Sprintf("A%d.%d: %s", n, m, answerText(fu.Answer)))
		}
	}

	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(line)
}

func answerText(a *string) string {
	if a == nil {
		return NoAnswer
	}
	return *a
}
