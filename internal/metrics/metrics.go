package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu                 sync.RWMutex
	sessionsStarted    int64
	sessionsDeleted    int64
	questionsAsked     int64
	answersSubmitted   int64
	followupsGenerated int64
	feedbackReports    int64
	apiCallsTotal      int64
	apiCallsSuccessful int64
	lastUpdateTime     time.Time
}

// Snapshot — копия счетчиков на момент вызова
type Snapshot struct {
	SessionsStarted    int64     `json:"sessions_started"`
	SessionsDeleted    int64     `json:"sessions_deleted"`
	QuestionsAsked     int64     `json:"questions_asked"`
	AnswersSubmitted   int64     `json:"answers_submitted"`
	FollowupsGenerated int64     `json:"followups_generated"`
	FeedbackReports    int64     `json:"feedback_reports"`
	APICallsTotal      int64     `json:"api_calls_total"`
	APICallsSuccessful int64     `json:"api_calls_successful"`
	LastUpdateTime     time.Time `json:"last_update_time"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		lastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.increment(&m.sessionsStarted)
}

func (m *Metrics) IncrementSessionsDeleted() {
	m.increment(&m.sessionsDeleted)
}

func (m *Metrics) IncrementQuestionsAsked() {
	m.increment(&m.questionsAsked)
}

func (m *Metrics) IncrementAnswersSubmitted() {
	m.increment(&m.answersSubmitted)
}

func (m *Metrics) IncrementFollowupsGenerated() {
	m.increment(&m.followupsGenerated)
}

func (m *Metrics) IncrementFeedbackReports() {
	m.increment(&m.feedbackReports)
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiCallsTotal++
	if success {
		m.apiCallsSuccessful++
	}
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:    m.sessionsStarted,
		SessionsDeleted:    m.sessionsDeleted,
		QuestionsAsked:     m.questionsAsked,
		AnswersSubmitted:   m.answersSubmitted,
		FollowupsGenerated: m.followupsGenerated,
		FeedbackReports:    m.feedbackReports,
		APICallsTotal:      m.apiCallsTotal,
		APICallsSuccessful: m.apiCallsSuccessful,
		LastUpdateTime:     m.lastUpdateTime,
	}
}

func (m *Metrics) increment(counter *int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*counter++
	m.lastUpdateTime = time.Now()
}
