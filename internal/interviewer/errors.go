package interviewer

import (
	"errors"
	"fmt"
)

var errEmptyResponse = errors.New("model returned empty text")

// GatewayError возвращается, когда вызов модели не удался после всех попыток,
// чтобы вызывающая сторона отличала сбой модели от ошибок сессии.
type GatewayError struct {
	Op       string
	Attempts int
	Wrapped  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: model call failed after %d attempt(s): %v", e.Op, e.Attempts, e.Wrapped)
}

func (e *GatewayError) Unwrap() error {
	return e.Wrapped
}
