package session

import (
	"fmt"
	"sync"
)

// Registry владеет всеми сессиями процесса. Доступ к разным ключам безопасен
// из нескольких горутин; атомарных операций над несколькими ключами нет.
// Вытеснения по времени нет: сессия живет до явного Delete или до конца процесса.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Record
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Record),
	}
}

// Create регистрирует новую сессию с пустой историей.
// Существующая запись с тем же id молча перезаписывается.
func (r *Registry) Create(id, role, difficulty string) *Record {
	record := NewRecord(role, difficulty)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = record
	return record
}

// Get возвращает сессию, если она есть
func (r *Registry) Get(id string) (*Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.sessions[id]
	return record, ok
}

// Lookup работает как Get, но возвращает ErrNotFound для неизвестного id
func (r *Registry) Lookup(id string) (*Record, error) {
	record, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return record, nil
}

func (r *Registry) Exists(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// Delete удаляет сессию. Для неизвестного id ничего не делает и возвращает false.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Len возвращает количество живых сессий
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
