package store

import (
	"context"
	"fmt"
	"sync"

	"claimflow/internal/claim/models"
	"claimflow/pkg/domain"
	"claimflow/pkg/sentinel"
)

// MemoryStore keeps claims in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	claims map[domain.ClaimID]*models.Claim
	eligs  map[domain.ClaimID]*models.EligibilityRecord
	tasks  map[domain.ClaimID][]models.Task
	notes  map[domain.ClaimID][]models.Note
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		claims: make(map[domain.ClaimID]*models.Claim),
		eligs:  make(map[domain.ClaimID]*models.EligibilityRecord),
		tasks:  make(map[domain.ClaimID][]models.Task),
		notes:  make(map[domain.ClaimID][]models.Note),
	}
}

func (s *MemoryStore) Create(_ context.Context, claim *models.Claim, elig *models.EligibilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.claims[claim.ID]; exists {
		return fmt.Errorf("create claim: %w", sentinel.ErrConflict)
	}
	c := *claim
	s.claims[claim.ID] = &c
	s.eligs[claim.ID] = elig.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id domain.ClaimID) (*models.Claim, *models.EligibilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[id]
	if !ok {
		return nil, nil, fmt.Errorf("get claim: %w", sentinel.ErrNotFound)
	}
	c := *claim
	return &c, s.eligs[id].Clone(), nil
}

// Update applies the optimistic version check: the caller loses when the
// stored version moved on, and must re-fetch before retrying.
func (s *MemoryStore) Update(_ context.Context, claim *models.Claim, elig *models.EligibilityRecord, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.claims[claim.ID]
	if !ok {
		return fmt.Errorf("update claim: %w", sentinel.ErrNotFound)
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("update claim: %w", sentinel.ErrStale)
	}
	c := *claim
	c.Version = expectedVersion + 1
	s.claims[claim.ID] = &c
	s.eligs[claim.ID] = elig.Clone()
	claim.Version = c.Version
	return nil
}

func (s *MemoryStore) AppendTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[task.ClaimID]; !ok {
		return fmt.Errorf("append task: %w", sentinel.ErrNotFound)
	}
	for _, existing := range s.tasks[task.ClaimID] {
		if existing.Name == task.Name {
			return fmt.Errorf("append task: %w", sentinel.ErrConflict)
		}
	}
	s.tasks[task.ClaimID] = append(s.tasks[task.ClaimID], *task)
	return nil
}

func (s *MemoryStore) TasksFor(_ context.Context, id domain.ClaimID) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks[id]))
	copy(out, s.tasks[id])
	return out, nil
}

func (s *MemoryStore) AppendNote(_ context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.claims[note.ClaimID]; !ok {
		return fmt.Errorf("append note: %w", sentinel.ErrNotFound)
	}
	s.notes[note.ClaimID] = append(s.notes[note.ClaimID], *note)
	return nil
}

func (s *MemoryStore) NotesFor(_ context.Context, id domain.ClaimID) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Note, len(s.notes[id]))
	copy(out, s.notes[id])
	return out, nil
}
