package interviewer

import (
	"context"
	"strings"

	"interview-practice/internal/llm"
)

type gatewayResult struct {
	text string
	err  error
}

// callGateway вызывает модель с таймаутом на каждую попытку и ограниченным числом повторов.
// Пустой текст в текстовом режиме считается неудачной попыткой.
func (s *Service) callGateway(ctx context.Context, op string, req llm.Request) (string, error) {
	maxAttempts := 1 + s.policy.Retries

	var lastErr error
	attempts := 0
	for attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			break
		}

		attempts++
		text, err := s.generateOnce(ctx, req)
		s.metrics.IncrementAPICall(err == nil)
		if err == nil {
			return text, nil
		}

		lastErr = err
		s.logger.Warn("model call failed",
			"op", op,
			"attempt", attempts,
			"mode", req.Mode.String(),
			"error", err,
		)
	}

	return "", &GatewayError{Op: op, Attempts: attempts, Wrapped: lastErr}
}

// generateOnce ограничивает одну попытку таймаутом, даже если Gateway игнорирует ctx
func (s *Service) generateOnce(ctx context.Context, req llm.Request) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.policy.Timeout)
	defer cancel()

	done := make(chan gatewayResult, 1)
	go func() {
		text, err := s.gateway.Generate(callCtx, req)
		done <- gatewayResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		if req.Mode == llm.ModeText && strings.TrimSpace(res.text) == "" {
			return "", errEmptyResponse
		}
		return res.text, nil
	case <-callCtx.Done():
		return "", callCtx.Err()
	}
}
