package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. It backs the memory
// content store for single-instance demos and tests; sessions are lost on
// restart.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data    Data
	expires time.Time
}

// NewMemoryStore returns an empty in-memory session store. A zero ttl
// selects DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, now: time.Now, sessions: make(map[string]memoryEntry)}
}

// Create stores a new session and returns its token.
func (s *MemoryStore) Create(ctx context.Context, data *Data) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	data.CreatedAt = now.UTC()
	s.sessions[token] = memoryEntry{data: *data, expires: now.Add(s.ttl)}
	return token, nil
}

// Get returns the session for token, or nil.
func (s *MemoryStore) Get(ctx context.Context, token string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(token)
	if !ok {
		return nil, nil
	}
	data := e.data
	return &data, nil
}

// Update replaces the session data and resets the TTL.
func (s *MemoryStore) Update(ctx context.Context, token string, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live(token); !ok {
		return ErrNoSession
	}
	s.sessions[token] = memoryEntry{data: *data, expires: s.now().Add(s.ttl)}
	return nil
}

// Destroy removes the session.
func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// live returns the unexpired entry for token, evicting it if expired.
// Caller must hold the lock.
func (s *MemoryStore) live(token string) (memoryEntry, bool) {
	e, ok := s.sessions[token]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(e.expires) {
		delete(s.sessions, token)
		return memoryEntry{}, false
	}
	return e, true
}
