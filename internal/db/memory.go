package db

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProposalStore keeps proposals in process. It backs local runs without
// DATABASE_URL and the service tests.
type MemoryProposalStore struct {
	mu        sync.RWMutex
	proposals map[string]Proposal
}

func NewMemoryProposalStore() *MemoryProposalStore {
	return &MemoryProposalStore{proposals: make(map[string]Proposal)}
}

func (s *MemoryProposalStore) Create(_ context.Context, p *Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.proposals[p.OfferNumber]; exists {
		return fmt.Errorf("proposal %s already exists", p.OfferNumber)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()
	s.proposals[p.OfferNumber] = *p
	return nil
}

func (s *MemoryProposalStore) GetByOfferNumber(_ context.Context, offerNumber string) (*Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.proposals[offerNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

type MemoryClientStore struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewMemoryClientStore(clients ...Client) *MemoryClientStore {
	s := &MemoryClientStore{clients: make(map[string]Client, len(clients))}
	for _, c := range clients {
		s.clients[c.ClientID] = c
	}
	return s
}

func (s *MemoryClientStore) Put(c Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ClientID] = c
}

func (s *MemoryClientStore) GetByNumber(_ context.Context, clientNumber string) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[clientNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryClientStore) GetByEmail(_ context.Context, email string) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *Client
	for _, c := range s.clients {
		if !strings.EqualFold(c.Email, email) {
			continue
		}
		if found == nil || c.CreatedAt.After(found.CreatedAt) {
			c := c
			found = &c
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}
