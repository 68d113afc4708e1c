package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions for the lifetime of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      Clock
}

func NewMemoryStore(clock Clock) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{sessions: make(map[string]*Session), now: clock}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return &Session{ID: id, History: []Turn{}, Context: map[string]interface{}{}}, nil
	}
	return copySession(s), nil
}

func (m *MemoryStore) AppendTurn(_ context.Context, id string, role Role, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = &Session{ID: id, Context: map[string]interface{}{}}
		m.sessions[id] = s
	}
	s.History = append(s.History, Turn{Role: role, Content: content, Timestamp: m.now()})
	return nil
}

func (m *MemoryStore) SetContext(_ context.Context, id, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = &Session{ID: id, Context: map[string]interface{}{}}
		m.sessions[id] = s
	}
	s.Context[key] = value
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func copySession(s *Session) *Session {
	out := &Session{
		ID:      s.ID,
		History: append([]Turn{}, s.History...),
		Context: make(map[string]interface{}, len(s.Context)),
	}
	for k, v := range s.Context {
		out.Context[k] = v
	}
	return out
}
