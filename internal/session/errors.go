package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается, если сессии с таким идентификатором нет в реестре
	ErrNotFound = errors.New("session not found")

	// ErrState — общий класс ошибок "история сессии в неподходящем состоянии"
	ErrState = errors.New("invalid session state")

	ErrNoQuestion     = fmt.Errorf("%w: no question to attach answer to", ErrState)
	ErrNoBaseQuestion = fmt.Errorf("%w: no base question", ErrState)
	ErrNoFollowup     = fmt.Errorf("%w: no followup to answer", ErrState)
)
