package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Sessions do not survive a restart;
// it exists for tests and for hosts that deliberately opt out of durable
// credential storage.
type MemoryStore struct {
	mu    sync.Mutex
	creds Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.creds
	if len(s.creds.User) > 0 {
		out.User = append([]byte(nil), s.creds.User...)
	}
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = creds
	if len(creds.User) > 0 {
		s.creds.User = append([]byte(nil), creds.User...)
	}
	return nil
}

func (s *MemoryStore) SetAccessToken(_ context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds.AccessToken = accessToken
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = Credentials{}
	return nil
}
