package journey

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"claimflow/internal/answers"
	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
)

type PageSequenceSuite struct {
	suite.Suite
	seq *Sequence
}

func TestPageSequenceSuite(t *testing.T) {
	suite.Run(t, new(PageSequenceSuite))
}

func (s *PageSequenceSuite) SetupTest() {
	seq, err := NewSequence(domain.PolicyStudentLoans, testPages())
	s.Require().NoError(err)
	s.seq = seq
}

func (s *PageSequenceSuite) navigator(completed []domain.Slug, current domain.Slug, values map[answers.Attribute]any) *PageSequence {
	st := answers.NewStore(testSchema())
	for a, v := range values {
		_, err := st.Set(a, v)
		s.Require().NoError(err)
	}
	ctx := Context{Snapshot: st.Snapshot(), Status: eligibility.StatusUndetermined}
	return NewPageSequence(s.seq, ctx, completed, current)
}

func (s *PageSequenceSuite) TestInSequence() {
	s.Run("the first page is always reachable", func() {
		nav := s.navigator(nil, "", nil)
		s.True(nav.InSequence("first"))
	})

	s.Run("a page is reachable once everything before it is completed", func() {
		nav := s.navigator([]domain.Slug{"first"}, "", map[answers.Attribute]any{attrFirst: true})
		s.True(nav.InSequence("extra"))
		s.False(nav.InSequence("qualification"), "extra not completed yet")
	})

	s.Run("a slug outside the sequence is unreachable", func() {
		nav := s.navigator([]domain.Slug{"first", "extra"}, "", map[answers.Attribute]any{
			attrFirst: true, attrExtra: false,
		})
		s.False(nav.InSequence("extra-detail"), "page excluded by the gate answer")
	})
}

func (s *PageSequenceSuite) TestFurthestReachable() {
	s.Run("the first uncompleted page", func() {
		nav := s.navigator([]domain.Slug{"first"}, "", map[answers.Attribute]any{attrFirst: true})
		s.Equal(domain.Slug("extra"), nav.FurthestReachable())
	})

	s.Run("the last page when everything is completed", func() {
		nav := s.navigator([]domain.Slug{"first", "extra", "qualification", SlugCheckYourAnswers}, "",
			map[answers.Attribute]any{attrFirst: true, attrExtra: false, attrQuals: "direct"})
		s.Equal(SlugCheckYourAnswers, nav.FurthestReachable())
	})
}

func (s *PageSequenceSuite) TestAdvance() {
	s.Run("moves to the next in-sequence page", func() {
		nav := s.navigator([]domain.Slug{"first"}, "first", map[answers.Attribute]any{attrFirst: true})
		s.Equal(domain.Slug("extra"), nav.Advance())
	})

	s.Run("a newly included page appears immediately after its gate", func() {
		nav := s.navigator([]domain.Slug{"first", "extra"}, "extra", map[answers.Attribute]any{
			attrFirst: true, attrExtra: true,
		})
		s.Equal(domain.Slug("extra-detail"), nav.Advance())
	})

	s.Run("the last page advances to confirmation", func() {
		nav := s.navigator([]domain.Slug{"first", "extra", "qualification", SlugCheckYourAnswers}, SlugCheckYourAnswers,
			map[answers.Attribute]any{attrFirst: true, attrExtra: false, attrQuals: "direct"})
		s.Equal(SlugConfirmation, nav.Advance())
	})

	s.Run("a current page that fell out resumes from the furthest page", func() {
		// extra-detail was the current page, then the gate answer changed.
		nav := s.navigator([]domain.Slug{"first", "extra"}, "extra-detail", map[answers.Attribute]any{
			attrFirst: true, attrExtra: false,
		})
		s.Equal(domain.Slug("qualification"), nav.Advance())
	})
}

func (s *PageSequenceSuite) TestPreviousSlug() {
	s.Run("walks back to the nearest completed page", func() {
		nav := s.navigator([]domain.Slug{"first", "extra"}, "qualification", map[answers.Attribute]any{
			attrFirst: true, attrExtra: false,
		})
		prev, ok := nav.PreviousSlug()
		s.True(ok)
		s.Equal(domain.Slug("extra"), prev)
	})

	s.Run("skips completed pages that fell out of the sequence", func() {
		// extra-detail was completed while the gate was true; the gate is
		// now false so it must not be a back-target.
		nav := s.navigator([]domain.Slug{"first", "extra", "extra-detail"}, "qualification", map[answers.Attribute]any{
			attrFirst: true, attrExtra: false,
		})
		prev, ok := nav.PreviousSlug()
		s.True(ok)
		s.Equal(domain.Slug("extra"), prev)
	})

	s.Run("the first page has nothing before it", func() {
		nav := s.navigator(nil, "first", nil)
		_, ok := nav.PreviousSlug()
		s.False(ok)
	})
}
