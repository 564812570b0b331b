package drafts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/exposeprofi/proposals/internal/quote"
)

type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]memoryEntry
	now    func() time.Time
}

type memoryEntry struct {
	draft     *quote.Draft
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts: make(map[string]memoryEntry),
		now:    time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*quote.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupExpiredLocked(s.now())

	entry, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry.draft.Clone(), nil
}

func (s *MemoryStore) Set(_ context.Context, draft *quote.Draft, ttl time.Duration) error {
	if draft == nil || draft.ID == "" {
		return fmt.Errorf("draft id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.cleanupExpiredLocked(now)
	s.drafts[draft.ID] = memoryEntry{
		draft:     draft.Clone(),
		expiresAt: now.Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)
	return nil
}

func (s *MemoryStore) cleanupExpiredLocked(now time.Time) {
	for id, entry := range s.drafts {
		if now.After(entry.expiresAt) {
			delete(s.drafts, id)
		}
	}
}

func (s *MemoryStore) Close() error {
	return nil
}
