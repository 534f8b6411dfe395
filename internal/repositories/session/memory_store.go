package session

import (
	"context"
	"sync"
	"time"

	portsrepo "github.com/SscSPs/currency_exchange_app/internal/core/ports/repositories"
)

type memoryEntry struct {
	clientID  string
	expiresAt time.Time
}

// MemoryStore is the single-instance fallback used when Redis is not configured.
// Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ portsrepo.OperativeClientStore = (*MemoryStore)(nil)

// NewMemoryStore creates a store whose entries expire after ttl. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) GetOperativeClientID(_ context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		s.mu.Lock()
		if current, still := s.entries[userID]; still && current == entry {
			delete(s.entries, userID)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return entry.clientID, true, nil
}

func (s *MemoryStore) SetOperativeClientID(_ context.Context, userID, clientID string) error {
	entry := memoryEntry{clientID: clientID}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[userID] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ClearOperativeClientID(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.entries, userID)
	s.mu.Unlock()
	return nil
}
