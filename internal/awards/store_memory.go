package awards

import (
	"context"
	"sync"

	"claimflow/pkg/domain"
)

type memoryKey struct {
	school domain.SchoolID
	year   domain.AcademicYear
}

// MemoryStore is an in-memory award table for unit tests and local
// development.
type MemoryStore struct {
	mu     sync.RWMutex
	awards map[memoryKey]int64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{awards: make(map[memoryKey]int64)}
}

// Put inserts or replaces an award row.
func (s *MemoryStore) Put(_ context.Context, award Award) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awards[memoryKey{school: award.SchoolID, year: award.Year}] = award.Amount
	return nil
}

func (s *MemoryStore) Amount(_ context.Context, school domain.SchoolID, year domain.AcademicYear) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.awards[memoryKey{school: school, year: year}], nil
}

func (s *MemoryStore) MaxAmount(_ context.Context, year domain.AcademicYear) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var max int64
	for key, amount := range s.awards {
		if key.year == year && amount > max {
			max = amount
		}
	}
	return max, nil
}
