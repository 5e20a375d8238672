package account

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryStore builds a mutex-guarded in-memory store. It backs tests and
// the development fallback when no database is configured.
func NewMemoryStore() Store {
	return &memoryStore{accounts: make(map[string]Account)}
}

func (s *memoryStore) Get(_ context.Context, username string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (s *memoryStore) Insert(_ context.Context, acct Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[acct.Username]; exists {
		return ErrUsernameTaken
	}
	s.accounts[acct.Username] = acct
	return nil
}

func (s *memoryStore) Update(_ context.Context, username string, mutate func(Account) (Account, error)) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	updated, err := mutate(acct)
	if err != nil {
		return Account{}, err
	}
	updated.Username = acct.Username // the key is immutable
	s.accounts[username] = updated
	return updated, nil
}

func (s *memoryStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[username]; !ok {
		return ErrNotFound
	}
	delete(s.accounts, username)
	return nil
}
