package interviewer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"interview-practice/internal/config"
	"interview-practice/internal/llm"
	"interview-practice/internal/metrics"
	"interview-practice/internal/prompts"
	"interview-practice/internal/session"
	"interview-practice/internal/storage"
)

// Archiver сохраняет итоговые отчеты. Ошибки архива не влияют на результат End.
type Archiver interface {
	SaveReport(report *storage.Report) error
}

// Options — необязательные зависимости сервиса; нулевые значения заменяются значениями по умолчанию
type Options struct {
	Interview *config.InterviewConfig
	Gateway   config.GatewayConfig
	Metrics   *metrics.Metrics
	Archive   Archiver
	Logger    *slog.Logger
}

// Service проводит интервью: выдает вопросы, принимает ответы, решает об уточнениях
// и собирает итоговую оценку.
//
// Операции над разными сессиями независимы. Операции над одной сессией не сериализуются:
// параллельные NextQuestion/SubmitAnswer для одного id могут перемешать Turn и Followup
// в порядке ответов модели. Клиенту, которому нужен строгий порядок, нужно слать
// запросы одной сессии последовательно.
type Service struct {
	sessions  *session.Registry
	gateway   llm.Gateway
	interview *config.InterviewConfig
	policy    config.GatewayConfig
	metrics   *metrics.Metrics
	archive   Archiver
	logger    *slog.Logger
	now       func() time.Time
}

// New создает сервис интервьюера
func New(sessions *session.Registry, gateway llm.Gateway, opts Options) *Service {
	s := &Service{
		sessions:  sessions,
		gateway:   gateway,
		interview: opts.Interview,
		policy:    opts.Gateway,
		metrics:   opts.Metrics,
		archive:   opts.Archive,
		logger:    opts.Logger,
		now:       time.Now,
	}

	if s.interview == nil {
		s.interview = config.DefaultInterviewConfig()
	}
	if s.policy.Timeout <= 0 {
		s.policy.Timeout = 60 * time.Second
	}
	if s.policy.Retries < 0 {
		s.policy.Retries = 0
	}
	if s.metrics == nil {
		s.metrics = metrics.NewMetrics()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	return s
}

// Metrics возвращает счетчики сервиса
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// Start создает новую сессию и возвращает ее идентификатор
func (s *Service) Start(role, difficulty string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("ошибка генерации id сессии: %w", err)
	}

	s.sessions.Create(id.String(), role, difficulty)
	s.metrics.IncrementSessionsStarted()
	s.logger.Info("session started", "session_id", id.String(), "role", role, "difficulty", difficulty)

	return id.String(), nil
}

// NextQuestion генерирует следующий вопрос и добавляет его в историю
func (s *Service) NextQuestion(ctx context.Context, sessionID string) (string, error) {
	record, err := s.sessions.Lookup(sessionID)
	if err != nil {
		return "", err
	}

	prompt := prompts.BuildQuestionPrompt(record.Role(), record.Difficulty(), s.interview.QuestionWordLimit)

	question, err := s.callGateway(ctx, "next_question", llm.Request{
		Prompt:      prompt,
		Mode:        llm.ModeText,
		Temperature: s.interview.QuestionTemperature,
	})
	if err != nil {
		return "", err
	}

	question = strings.TrimSpace(question)
	record.AddQuestion(question)
	s.metrics.IncrementQuestionsAsked()

	return question, nil
}

// SubmitAnswer записывает ответ и спрашивает у модели, нужен ли уточняющий вопрос.
//
// Ответ записывается до вызова модели и остается в истории, даже если вызов не удался.
// Решение строится по последнему базовому вопросу, а не по тексту уточнения.
// Неразобранный ответ модели считается отказом от уточнения, а не ошибкой.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, text string, isFollowupAnswer bool) (*FollowupResult, error) {
	record, err := s.sessions.Lookup(sessionID)
	if err != nil {
		return nil, err
	}

	if isFollowupAnswer {
		err = record.AddFollowupAnswer(text)
	} else {
		err = record.AddAnswer(text)
	}
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementAnswersSubmitted()

	question, ok := record.CurrentQuestion()
	if !ok {
		return nil, session.ErrNoBaseQuestion
	}

	raw, err := s.callGateway(ctx, "submit_answer", llm.Request{
		Prompt:      prompts.BuildFollowupDecisionPrompt(question, text),
		Mode:        llm.ModeJSON,
		Temperature: s.interview.DecisionTemperature,
		Schema:      decisionSchema,
	})
	if err != nil {
		return nil, err
	}

	switch d := ParseDecision(raw).(type) {
	case FollowUp:
		if err := record.AddFollowup(d.Question); err != nil {
			return nil, err
		}
		s.metrics.IncrementFollowupsGenerated()
		return &FollowupResult{FollowUp: &d.Question, Reason: &d.Reason}, nil
	case Unparsed:
		s.logger.Debug("follow-up decision not parsed, treating as no", "session_id", sessionID, "raw", d.Raw)
	case NoFollowUp:
	}

	return &FollowupResult{}, nil
}

// End собирает итоговую оценку по текущей истории. Сессия не удаляется,
// повторный вызов пересчитывает оценку заново.
func (s *Service) End(ctx context.Context, sessionID string) (*Feedback, error) {
	record, err := s.sessions.Lookup(sessionID)
	if err != nil {
		return nil, err
	}

	history := record.History()
	transcript := prompts.Transcript(history)

	raw, err := s.callGateway(ctx, "end", llm.Request{
		Prompt:      prompts.BuildFeedbackPrompt(transcript),
		Mode:        llm.ModeJSON,
		Temperature: s.interview.FeedbackTemperature,
		Schema:      feedbackSchema,
	})
	if err != nil {
		return nil, err
	}

	feedback := ParseFeedback(raw)
	s.metrics.IncrementFeedbackReports()
	s.archiveReport(sessionID, record, history, transcript, feedback)

	return &feedback, nil
}

// SessionView — снимок сессии для чтения
type SessionView struct {
	SessionID  string         `json:"session_id"`
	Role       string         `json:"role"`
	Difficulty string         `json:"difficulty"`
	History    []session.Turn `json:"history"`
}

// Session возвращает снимок истории сессии
func (s *Service) Session(sessionID string) (*SessionView, error) {
	record, err := s.sessions.Lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionView{
		SessionID:  sessionID,
		Role:       record.Role(),
		Difficulty: record.Difficulty(),
		History:    record.History(),
	}, nil
}

// Delete удаляет сессию из реестра
func (s *Service) Delete(sessionID string) error {
	if !s.sessions.Delete(sessionID) {
		return fmt.Errorf("session %q: %w", sessionID, session.ErrNotFound)
	}
	s.metrics.IncrementSessionsDeleted()
	s.logger.Info("session deleted", "session_id", sessionID)
	return nil
}

func (s *Service) archiveReport(sessionID string, record *session.Record, history []session.Turn, transcript string, feedback Feedback) {
	if s.archive == nil {
		return
	}

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		s.logger.Error("failed to encode feedback for archive", "session_id", sessionID, "error", err)
		return
	}

	report := &storage.Report{
		SessionID:  sessionID,
		Role:       record.Role(),
		Difficulty: record.Difficulty(),
		Timestamp:  s.now().UTC().Format(time.RFC3339),
		Transcript: transcript,
		History:    history,
		Feedback:   feedbackJSON,
	}
	if err := s.archive.SaveReport(report); err != nil {
		s.logger.Error("failed to archive report", "session_id", sessionID, "error", err)
	}
}
