package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	username  string
	expiresAt time.Time
}

type memoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

// NewMemoryStore builds an in-process session store for tests and the
// development fallback when no Redis is configured.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{ttl: normalizeTTL(ttl), sessions: make(map[string]memoryEntry)}
}

func (s *memoryStore) Create(_ context.Context, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{username: username, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *memoryStore) Username(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return "", ErrNoSession
	}
	return entry.username, nil
}

func (s *memoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *memoryStore) DestroyAll(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, entry := range s.sessions {
		if entry.username == username {
			delete(s.sessions, token)
		}
	}
	return nil
}
