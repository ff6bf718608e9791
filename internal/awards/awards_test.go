package awards

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
	year  domain.AcademicYear
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemory()
	s.year = domain.NewAcademicYear(2025)
}

func (s *MemoryStoreSuite) TestAmount() {
	school := domain.NewSchoolID()

	s.Run("is zero when no row matches", func() {
		amount, err := s.store.Amount(s.ctx, school, s.year)
		s.Require().NoError(err)
		s.Zero(amount)
	})

	s.Run("resolves a stored row", func() {
		s.Require().NoError(s.store.Put(s.ctx, Award{SchoolID: school, Year: s.year, Amount: 200_000}))
		amount, err := s.store.Amount(s.ctx, school, s.year)
		s.Require().NoError(err)
		s.Equal(int64(200_000), amount)
	})

	s.Run("is scoped to the academic year", func() {
		amount, err := s.store.Amount(s.ctx, school, s.year.Next())
		s.Require().NoError(err)
		s.Zero(amount)
	})

	s.Run("replaces on a second put", func() {
		s.Require().NoError(s.store.Put(s.ctx, Award{SchoolID: school, Year: s.year, Amount: 250_000}))
		amount, err := s.store.Amount(s.ctx, school, s.year)
		s.Require().NoError(err)
		s.Equal(int64(250_000), amount)
	})
}

func (s *MemoryStoreSuite) TestMaxAmount() {
	s.Require().NoError(s.store.Put(s.ctx, Award{SchoolID: domain.NewSchoolID(), Year: s.year, Amount: 100_000}))
	s.Require().NoError(s.store.Put(s.ctx, Award{SchoolID: domain.NewSchoolID(), Year: s.year, Amount: 300_000}))
	s.Require().NoError(s.store.Put(s.ctx, Award{SchoolID: domain.NewSchoolID(), Year: s.year.Next(), Amount: 500_000}))

	s.Run("returns the largest award within the year", func() {
		max, err := s.store.MaxAmount(s.ctx, s.year)
		s.Require().NoError(err)
		s.Equal(int64(300_000), max)
	})

	s.Run("is zero for a year with no rows", func() {
		max, err := s.store.MaxAmount(s.ctx, domain.NewAcademicYear(2030))
		s.Require().NoError(err)
		s.Zero(max)
	})
}
