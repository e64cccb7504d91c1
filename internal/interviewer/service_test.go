package interviewer_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-practice/internal/config"
	"interview-practice/internal/interviewer"
	"interview-practice/internal/llm"
	"interview-practice/internal/session"
	"interview-practice/internal/storage"
)

// scriptedGateway отвечает по очереди заранее заданными ответами и запоминает запросы
type scriptedGateway struct {
	mu        sync.Mutex
	responses []scripted
	requests  []llm.Request
}

type scripted struct {
	text string
	err  error
}

func (g *scriptedGateway) Generate(ctx context.Context, req llm.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	next := g.responses[0]
	g.responses = g.responses[1:]
	return next.text, next.err
}

func (g *scriptedGateway) calls() []llm.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.Request(nil), g.requests...)
}

func reply(texts ...string) *scriptedGateway {
	g := &scriptedGateway{}
	for _, text := range texts {
		g.responses = append(g.responses, scripted{text: text})
	}
	return g
}

func newService(gateway llm.Gateway) (*interviewer.Service, *session.Registry) {
	registry := session.NewRegistry()
	svc := interviewer.New(registry, gateway, interviewer.Options{
		Gateway: config.GatewayConfig{Timeout: time.Second, Retries: 1},
	})
	return svc, registry
}

func startWithQuestion(t *testing.T, svc *interviewer.Service) string {
	t.Helper()
	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)
	_, err = svc.NextQuestion(context.Background(), id)
	require.NoError(t, err)
	return id
}

func TestStart_RegistersEmptySession(t *testing.T) {
	svc, registry := newService(reply())

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	record, ok := registry.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", record.Role())
	assert.Equal(t, "medium", record.Difficulty())
	assert.Equal(t, 0, record.Len())

	other, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
	assert.Equal(t, int64(2), svc.Metrics().GetSnapshot().SessionsStarted)
}

func TestNextQuestion_AppendsTurn(t *testing.T) {
	gateway := reply("  How would you design a rate limiter?\n")
	svc, registry := newService(gateway)

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	q, err := svc.NextQuestion(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "How would you design a rate limiter?", q)

	record, _ := registry.Get(id)
	history := record.History()
	require.Len(t, history, 1)
	assert.Equal(t, q, history[0].Question)
	assert.Nil(t, history[0].Answer)

	calls := gateway.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.ModeText, calls[0].Mode)
	assert.Equal(t, 0.2, calls[0].Temperature)
	assert.Contains(t, calls[0].Prompt, "role: Backend Engineer.")
	assert.Contains(t, calls[0].Prompt, "Difficulty: medium.")
}

func TestNextQuestion_WithoutAnsweringPrevious(t *testing.T) {
	svc, registry := newService(reply("Q1", "Q2"))

	id := startWithQuestion(t, svc)
	_, err := svc.NextQuestion(context.Background(), id)
	require.NoError(t, err)

	record, _ := registry.Get(id)
	history := record.History()
	require.Len(t, history, 2)
	assert.Nil(t, history[0].Answer)
	assert.Nil(t, history[1].Answer)
}

func TestSubmitAnswer_FollowUpYes(t *testing.T) {
	gateway := reply("Q1", `{"follow_up":"yes","follow_up_question":"X","reason":"Y"}`)
	svc, registry := newService(gateway)
	id := startWithQuestion(t, svc)

	result, err := svc.SubmitAnswer(context.Background(), id, "I would use a queue", false)
	require.NoError(t, err)

	require.NotNil(t, result.FollowUp)
	assert.Equal(t, "X", *result.FollowUp)
	require.NotNil(t, result.Reason)
	assert.Equal(t, "Y", *result.Reason)

	record, _ := registry.Get(id)
	history := record.History()
	require.Len(t, history, 1)
	require.NotNil(t, history[0].Answer)
	assert.Equal(t, "I would use a queue", *history[0].Answer)
	require.Len(t, history[0].Followups, 1)
	assert.Equal(t, "X", history[0].Followups[0].Question)
	assert.Nil(t, history[0].Followups[0].Answer)

	decision := gateway.calls()[1]
	assert.Equal(t, llm.ModeJSON, decision.Mode)
	assert.Equal(t, 0.5, decision.Temperature)
	assert.NotNil(t, decision.Schema)
	assert.Contains(t, decision.Prompt, `User answer: """I would use a queue"""`)
	assert.Contains(t, decision.Prompt, `Question: """Q1"""`)
}

func TestSubmitAnswer_NoFollowUp(t *testing.T) {
	responses := map[string]string{
		"explicit no":          `{"follow_up":"no"}`,
		"malformed text":       `I think a follow-up would help`,
		"empty object":         `{}`,
		"non-mapping":          `["yes"]`,
		"yes without question": `{"follow_up":"yes"}`,
	}

	for name, response := range responses {
		t.Run(name, func(t *testing.T) {
			svc, registry := newService(reply("Q1", response))
			id := startWithQuestion(t, svc)

			result, err := svc.SubmitAnswer(context.Background(), id, "answer", false)
			require.NoError(t, err)
			assert.Nil(t, result.FollowUp)
			assert.Nil(t, result.Reason)

			record, _ := registry.Get(id)
			history := record.History()
			assert.Empty(t, history[0].Followups)
			require.NotNil(t, history[0].Answer)
			assert.Equal(t, "answer", *history[0].Answer)
		})
	}
}

func TestSubmitAnswer_FollowupAnswerUsesBaseQuestion(t *testing.T) {
	gateway := reply(
		"Base question",
		`{"follow_up":"yes","follow_up_question":"Follow-up question"}`,
		`{"follow_up":"no"}`,
	)
	svc, registry := newService(gateway)
	id := startWithQuestion(t, svc)

	_, err := svc.SubmitAnswer(context.Background(), id, "first answer", false)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(context.Background(), id, "follow-up answer", true)
	require.NoError(t, err)
	assert.Nil(t, result.FollowUp)

	record, _ := registry.Get(id)
	history := record.History()
	assert.Equal(t, "first answer", *history[0].Answer)
	require.Len(t, history[0].Followups, 1)
	require.NotNil(t, history[0].Followups[0].Answer)
	assert.Equal(t, "follow-up answer", *history[0].Followups[0].Answer)

	last := gateway.calls()[2]
	assert.Contains(t, last.Prompt, `Question: """Base question"""`)
	assert.Contains(t, last.Prompt, `User answer: """follow-up answer"""`)
	assert.NotContains(t, last.Prompt, "Follow-up question")
}

func TestSubmitAnswer_StateErrors(t *testing.T) {
	gateway := reply("Q1")
	svc, _ := newService(gateway)

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), id, "answer", false)
	assert.ErrorIs(t, err, session.ErrNoQuestion)
	assert.ErrorIs(t, err, session.ErrState)

	_, err = svc.SubmitAnswer(context.Background(), id, "answer", true)
	assert.ErrorIs(t, err, session.ErrNoFollowup)

	_, err = svc.NextQuestion(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(context.Background(), id, "answer", true)
	assert.ErrorIs(t, err, session.ErrNoFollowup)

	// модель вызывалась только для вопроса
	assert.Len(t, gateway.calls(), 1)
}

func TestEnd_PassesThroughStructuredFeedback(t *testing.T) {
	feedback := `{"communication":{"score":14,"reason":"r","suggestions":["a","b"]},"summary":"s"}`
	gateway := reply("Q1", `{"follow_up":"yes","follow_up_question":"F1"}`, `{"follow_up":"no"}`, feedback)
	svc, registry := newService(gateway)
	id := startWithQuestion(t, svc)

	_, err := svc.SubmitAnswer(context.Background(), id, "A1", false)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(context.Background(), id, "F1A", true)
	require.NoError(t, err)

	result, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, result.Structured())
	assert.Equal(t, feedback, string(result.JSON))

	call := gateway.calls()[3]
	assert.Equal(t, llm.ModeJSON, call.Mode)
	assert.Contains(t, call.Prompt, "Q1: Q1\nA1: A1\nQ1.1: F1\nA1.1: F1A\n")

	assert.True(t, registry.Exists(id), "End must not delete the session")
}

func TestEnd_PassesThroughRawText(t *testing.T) {
	svc, _ := newService(reply("Q1", "Overall solid, 7/10."))
	id := startWithQuestion(t, svc)

	result, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, result.Structured())
	assert.Equal(t, "Overall solid, 7/10.", result.Raw)
}

func TestEnd_CanBeCalledRepeatedly(t *testing.T) {
	gateway := reply("Q1", `{"summary":"first"}`, `{"summary":"second"}`)
	svc, _ := newService(gateway)
	id := startWithQuestion(t, svc)

	first, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	second, err := svc.End(context.Background(), id)
	require.NoError(t, err)

	assert.JSONEq(t, `{"summary":"first"}`, string(first.JSON))
	assert.JSONEq(t, `{"summary":"second"}`, string(second.JSON))
	assert.Equal(t, gateway.calls()[1].Prompt, gateway.calls()[2].Prompt)
}

func TestEndToEnd(t *testing.T) {
	gateway := llm.Func(func(ctx context.Context, req llm.Request) (string, error) {
		switch {
		case req.Mode == llm.ModeText:
			return "How would you process 10k writes per second?", nil
		case strings.Contains(req.Prompt, "Decide if a follow-up"):
			return `{"follow_up":"no"}`, nil
		default:
			return `{"summary":"ok"}`, nil
		}
	})
	svc, registry := newService(gateway)

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	q, err := svc.NextQuestion(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, q)

	record, _ := registry.Get(id)
	require.Equal(t, 1, record.Len())
	assert.Nil(t, record.History()[0].Answer)

	_, err = svc.SubmitAnswer(context.Background(), id, "I would use a queue", false)
	require.NoError(t, err)
	assert.Equal(t, "I would use a queue", *record.History()[0].Answer)

	feedback, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, feedback)
}

func TestUnknownSession(t *testing.T) {
	gateway := reply("Q1")
	svc, registry := newService(gateway)
	id := startWithQuestion(t, svc)
	before := registry.Len()

	_, err := svc.NextQuestion(context.Background(), "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = svc.SubmitAnswer(context.Background(), "missing", "answer", false)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = svc.End(context.Background(), "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = svc.Session("missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	assert.ErrorIs(t, svc.Delete("missing"), session.ErrNotFound)

	record, _ := registry.Get(id)
	history := record.History()
	require.Len(t, history, 1)
	assert.Nil(t, history[0].Answer)
	assert.Empty(t, history[0].Followups)
	assert.Equal(t, before, registry.Len())
	assert.Len(t, gateway.calls(), 1)
}

func TestGatewayError_AfterRetries(t *testing.T) {
	boom := errors.New("upstream down")
	gateway := &scriptedGateway{responses: []scripted{{err: boom}, {err: boom}}}
	svc, registry := newService(gateway)

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	_, err = svc.NextQuestion(context.Background(), id)

	var gwErr *interviewer.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "next_question", gwErr.Op)
	assert.Equal(t, 2, gwErr.Attempts)
	assert.ErrorIs(t, err, boom)

	record, _ := registry.Get(id)
	assert.Equal(t, 0, record.Len())

	snapshot := svc.Metrics().GetSnapshot()
	assert.Equal(t, int64(2), snapshot.APICallsTotal)
	assert.Equal(t, int64(0), snapshot.APICallsSuccessful)
}

func TestGateway_RetrySucceeds(t *testing.T) {
	gateway := &scriptedGateway{responses: []scripted{
		{err: errors.New("temporary")},
		{text: "Q1"},
	}}
	svc, _ := newService(gateway)

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	q, err := svc.NextQuestion(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Q1", q)
	assert.Len(t, gateway.calls(), 2)
}

func TestGateway_EmptyQuestionIsRetried(t *testing.T) {
	svc, registry := newService(reply("   ", ""))

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	_, err = svc.NextQuestion(context.Background(), id)
	var gwErr *interviewer.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, 2, gwErr.Attempts)

	record, _ := registry.Get(id)
	assert.Equal(t, 0, record.Len())
}

func TestGateway_TimeoutWhenGatewayIgnoresContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	gateway := llm.Func(func(ctx context.Context, req llm.Request) (string, error) {
		<-release
		return "too late", nil
	})

	registry := session.NewRegistry()
	svc := interviewer.New(registry, gateway, interviewer.Options{
		Gateway: config.GatewayConfig{Timeout: 20 * time.Millisecond, Retries: 0},
	})

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	started := time.Now()
	_, err = svc.NextQuestion(context.Background(), id)
	assert.Less(t, time.Since(started), 2*time.Second)

	var gwErr *interviewer.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, gwErr.Attempts)
}

func TestGateway_CancelledParentStopsRetries(t *testing.T) {
	gateway := &scriptedGateway{}
	svc, _ := newService(gateway)

	id, err := svc.Start("Backend Engineer", "medium")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.NextQuestion(ctx, id)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gateway.calls())
}

func TestSubmitAnswer_GatewayFailureKeepsAnswer(t *testing.T) {
	boom := errors.New("down")
	gateway := &scriptedGateway{responses: []scripted{{text: "Q1"}, {err: boom}, {err: boom}}}
	svc, registry := newService(gateway)
	id := startWithQuestion(t, svc)

	_, err := svc.SubmitAnswer(context.Background(), id, "answer", false)
	assert.ErrorIs(t, err, boom)

	record, _ := registry.Get(id)
	require.NotNil(t, record.History()[0].Answer)
	assert.Equal(t, "answer", *record.History()[0].Answer)
}

type fakeArchive struct {
	reports []*storage.Report
	err     error
}

func (a *fakeArchive) SaveReport(report *storage.Report) error {
	a.reports = append(a.reports, report)
	return a.err
}

func TestEnd_ArchivesReport(t *testing.T) {
	archive := &fakeArchive{}
	registry := session.NewRegistry()
	svc := interviewer.New(registry, reply("Q1", "not json"), interviewer.Options{Archive: archive})

	id := startWithQuestion(t, svc)
	_, err := svc.End(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, archive.reports, 1)
	report := archive.reports[0]
	assert.Equal(t, id, report.SessionID)
	assert.Equal(t, "Backend Engineer", report.Role)
	assert.Equal(t, "Q1: Q1\nA1: (no answer)", report.Transcript)
	assert.JSONEq(t, `"not json"`, string(report.Feedback))
	assert.NotEmpty(t, report.Timestamp)
}

func TestEnd_ArchiveFailureIsNotReturned(t *testing.T) {
	archive := &fakeArchive{err: errors.New("disk full")}
	svc := interviewer.New(session.NewRegistry(), reply("Q1", `{"summary":"ok"}`), interviewer.Options{Archive: archive})

	id := startWithQuestion(t, svc)
	feedback, err := svc.End(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, feedback.Structured())
}

func TestSessionAndDelete(t *testing.T) {
	svc, registry := newService(reply("Q1"))
	id := startWithQuestion(t, svc)

	view, err := svc.Session(id)
	require.NoError(t, err)
	assert.Equal(t, id, view.SessionID)
	assert.Equal(t, "Backend Engineer", view.Role)
	require.Len(t, view.History, 1)

	require.NoError(t, svc.Delete(id))
	assert.False(t, registry.Exists(id))
	assert.Equal(t, int64(1), svc.Metrics().GetSnapshot().SessionsDeleted)
}

func TestIndependentSessionsConcurrently(t *testing.T) {
	gateway := llm.Func(func(ctx context.Context, req llm.Request) (string, error) {
		if req.Mode == llm.ModeText {
			return "Q", nil
		}
		return `{"follow_up":"no"}`, nil
	})
	svc, registry := newService(gateway)

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := svc.Start("role", "easy")
			if !assert.NoError(t, err) {
				return
			}
			ids[i] = id
			_, err = svc.NextQuestion(context.Background(), id)
			assert.NoError(t, err)
			_, err = svc.SubmitAnswer(context.Background(), id, "A", false)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		record, ok := registry.Get(id)
		require.True(t, ok)
		require.Equal(t, 1, record.Len())
		assert.Equal(t, "A", *record.History()[0].Answer)
	}
}
