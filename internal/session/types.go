package session

import "sync"

// Followup представляет уточняющий вопрос и ответ на него
type Followup struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
}

// Turn представляет один базовый вопрос интервью вместе с ответом и уточнениями
type Turn struct {
	Question  string     `json:"question"`
	Answer    *string    `json:"answer"`
	Followups []Followup `json:"followups"`
}

// Answered сообщает, был ли получен ответ на базовый вопрос
func (t Turn) Answered() bool {
	return t.Answer != nil
}

// Record хранит состояние одной сессии интервью.
//
// История упорядочена по времени выдачи вопросов и никогда не переупорядочивается.
// Все мутаторы работают только с последним элементом: последним Turn и его последним Followup.
// Отдельный вызов мутатора атомарен, но порядок между операциями над одной сессией
// не гарантируется — вызывающая сторона сериализует запросы сама.
type Record struct {
	mu         sync.RWMutex
	role       string
	difficulty string
	history    []Turn
}

// NewRecord создает запись сессии с пустой историей
func NewRecord(role, difficulty string) *Record {
	return &Record{
		role:       role,
		difficulty: difficulty,
		history:    []Turn{},
	}
}

func (r *Record) Role() string {
	return r.role
}

func (r *Record) Difficulty() string {
	return r.difficulty
}
