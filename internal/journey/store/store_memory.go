// Package store persists the session-scoped set of pages a claimant has
// completed in the current journey instance. The set is ephemeral: it is
// cleared on restart and expires with the session.
package store

import (
	"context"
	"sync"

	"claimflow/pkg/domain"
)

// CompletedStore tracks completed pages per claim, in completion order.
type CompletedStore interface {
	Completed(ctx context.Context, claim domain.ClaimID) ([]domain.Slug, error)
	MarkCompleted(ctx context.Context, claim domain.ClaimID, slug domain.Slug) error
	// Reset discards the journey instance, e.g. on restart or timeout.
	Reset(ctx context.Context, claim domain.ClaimID) error
}

// MemoryStore keeps completed sets in process memory for unit tests and
// local development. Entries never expire; session timeout is the Redis
// store's job.
type MemoryStore struct {
	mu        sync.RWMutex
	completed map[domain.ClaimID][]domain.Slug
}

func NewMemory() *MemoryStore {
	return &MemoryStore{completed: make(map[domain.ClaimID][]domain.Slug)}
}

func (s *MemoryStore) Completed(_ context.Context, claim domain.ClaimID) ([]domain.Slug, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Slug, len(s.completed[claim]))
	copy(out, s.completed[claim])
	return out, nil
}

func (s *MemoryStore) MarkCompleted(_ context.Context, claim domain.ClaimID, slug domain.Slug) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, done := range s.completed[claim] {
		if done == slug {
			return nil
		}
	}
	s.completed[claim] = append(s.completed[claim], slug)
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, claim domain.ClaimID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.completed, claim)
	return nil
}
