package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID  int64
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for userID and returns its token.
func (s *MemoryStore) Create(_ context.Context, userID int64) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.sessions[token] = entry{userID: userID, expires: s.now().Add(s.ttl)}
	return token, nil
}

// Lookup returns the user of a live session, or ErrNotFound.
func (s *MemoryStore) Lookup(_ context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[token]
	if !ok {
		return 0, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, token)
		return 0, ErrNotFound
	}
	return e.userID, nil
}

// Delete ends the session. Unknown tokens are ignored.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweep drops expired sessions. Caller holds mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for token, e := range s.sessions {
		if !now.Before(e.expires) {
			delete(s.sessions, token)
		}
	}
}
