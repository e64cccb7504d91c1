package session

// AddQuestion добавляет новый Turn с вопросом и без ответа
func (r *Record) AddQuestion(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, Turn{
		Question:  q,
		Followups: []Followup{},
	})
}

// AddAnswer записывает ответ в последний Turn, перезаписывая предыдущий ответ
func (r *Record) AddAnswer(a string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.current()
	if current == nil {
		return ErrNoQuestion
	}
	current.Answer = &a
	return nil
}

// AddFollowup добавляет уточняющий вопрос к последнему Turn
func (r *Record) AddFollowup(q string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.current()
	if current == nil {
		return ErrNoBaseQuestion
	}
	current.Followups = append(current.Followups, Followup{Question: q})
	return nil
}

// AddFollowupAnswer записывает ответ в последний Followup последнего Turn
func (r *Record) AddFollowupAnswer(a string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	followup := r.currentFollowup()
	if followup == nil {
		return ErrNoFollowup
	}
	followup.Answer = &a
	return nil
}

// CurrentQuestion возвращает текст последнего базового вопроса.
// Уточняющие вопросы сюда не попадают.
func (r *Record) CurrentQuestion() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current := r.current()
	if current == nil {
		return "", false
	}
	return current.Question, true
}

// Len возвращает количество базовых вопросов в истории
func (r *Record) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history)
}

// History возвращает глубокую копию истории
func (r *Record) History() []Turn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make([]Turn, len(r.history))
	for i, turn := range r.history {
		copied[i] = Turn{
			Question:  turn.Question,
			Answer:    cloneString(turn.Answer),
			Followups: make([]Followup, len(turn.Followups)),
		}
		for j, fu := range turn.Followups {
			copied[i].Followups[j] = Followup{
				Question: fu.Question,
				Answer:   cloneString(fu.Answer),
			}
		}
	}
	return copied
}

// current — последний Turn; вызывать под блокировкой
func (r *Record) current() *Turn {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// currentFollowup — последний Followup последнего Turn; вызывать под блокировкой
func (r *Record) currentFollowup() *Followup {
	current := r.current()
	if current == nil || len(current.Followups) == 0 {
		return nil
	}
	return &current.Followups[len(current.Followups)-1]
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
