package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"claimflow/pkg/domain"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *MemoryStore
	claim domain.ClaimID
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemory()
	s.claim = domain.NewClaimID()
}

func (s *MemoryStoreSuite) TestCompleted() {
	s.Run("is empty for a fresh claim", func() {
		completed, err := s.store.Completed(s.ctx, s.claim)
		s.Require().NoError(err)
		s.Empty(completed)
	})

	s.Run("preserves completion order", func() {
		for _, slug := range []domain.Slug{"qts-year", "claim-school", "subjects-taught"} {
			s.Require().NoError(s.store.MarkCompleted(s.ctx, s.claim, slug))
		}
		completed, err := s.store.Completed(s.ctx, s.claim)
		s.Require().NoError(err)
		s.Equal([]domain.Slug{"qts-year", "claim-school", "subjects-taught"}, completed)
	})

	s.Run("marking an already completed page is a no-op", func() {
		s.Require().NoError(s.store.MarkCompleted(s.ctx, s.claim, "qts-year"))
		completed, err := s.store.Completed(s.ctx, s.claim)
		s.Require().NoError(err)
		s.Equal([]domain.Slug{"qts-year", "claim-school", "subjects-taught"}, completed)
	})

	s.Run("returned slice does not alias store state", func() {
		completed, err := s.store.Completed(s.ctx, s.claim)
		s.Require().NoError(err)
		completed[0] = "tampered"

		again, err := s.store.Completed(s.ctx, s.claim)
		s.Require().NoError(err)
		s.Equal(domain.Slug("qts-year"), again[0])
	})
}

func (s *MemoryStoreSuite) TestReset() {
	s.Require().NoError(s.store.MarkCompleted(s.ctx, s.claim, "qts-year"))
	s.Require().NoError(s.store.Reset(s.ctx, s.claim))

	completed, err := s.store.Completed(s.ctx, s.claim)
	s.Require().NoError(err)
	s.Empty(completed)

	s.Run("resetting an unknown claim is a no-op", func() {
		s.Require().NoError(s.store.Reset(s.ctx, domain.NewClaimID()))
	})
}

func (s *MemoryStoreSuite) TestClaimsAreIsolated() {
	other := domain.NewClaimID()
	s.Require().NoError(s.store.MarkCompleted(s.ctx, s.claim, "qts-year"))
	s.Require().NoError(s.store.MarkCompleted(s.ctx, other, "current-school"))

	completed, err := s.store.Completed(s.ctx, s.claim)
	s.Require().NoError(err)
	s.Equal([]domain.Slug{"qts-year"}, completed)

	completed, err = s.store.Completed(s.ctx, other)
	s.Require().NoError(err)
	s.Equal([]domain.Slug{"current-school"}, completed)
}
