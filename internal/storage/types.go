package storage

import (
	"encoding/json"

	"interview-practice/internal/session"
)

// Report представляет итог одной сессии, записанный в архив
type Report struct {
	SessionID  string          `json:"session_id"`
	Role       string          `json:"role"`
	Difficulty string          `json:"difficulty"`
	Timestamp  string          `json:"timestamp"`
	Transcript string          `json:"transcript"`
	History    []session.Turn  `json:"history"`
	Feedback   json.RawMessage `json:"feedback"`
}
