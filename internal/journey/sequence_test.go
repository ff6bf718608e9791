package journey

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"claimflow/internal/answers"
	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
)

const (
	attrFirst  answers.Attribute = "first_answer"
	attrExtra  answers.Attribute = "wants_extra"
	attrDetail answers.Attribute = "extra_detail"
	attrQuals  answers.Attribute = "qualification_route"
)

func testSchema() *answers.Schema {
	return answers.NewSchema(
		answers.Spec{Name: attrFirst, Kind: answers.KindBool},
		answers.Spec{Name: attrExtra, Kind: answers.KindBool},
		answers.Spec{Name: attrDetail, Kind: answers.KindBool},
		answers.Spec{Name: attrQuals, Kind: answers.KindEnum, Enum: []string{"direct", "assessed"}},
	)
}

func testPages() []Page {
	return []Page{
		{Slug: "first", Attributes: []answers.Attribute{attrFirst}},
		{Slug: "extra", Attributes: []answers.Attribute{attrExtra}},
		{
			Slug:       "extra-detail",
			Attributes: []answers.Attribute{attrDetail},
			Include:    WhenBoolAnswered(attrExtra, true),
			Messages:   map[answers.Attribute]string{attrDetail: "Tell us more about the extra"},
		},
		{Slug: "qualification", Attributes: []answers.Attribute{attrQuals}, SkipWhenVerified: true},
		{Slug: SlugCheckYourAnswers},
	}
}

type SequenceSuite struct {
	suite.Suite
	seq *Sequence
}

func TestSequenceSuite(t *testing.T) {
	suite.Run(t, new(SequenceSuite))
}

func (s *SequenceSuite) SetupTest() {
	seq, err := NewSequence(domain.PolicyStudentLoans, testPages())
	s.Require().NoError(err)
	s.seq = seq
}

func (s *SequenceSuite) context(status eligibility.Status, verified bool, values map[answers.Attribute]any) Context {
	st := answers.NewStore(testSchema())
	for a, v := range values {
		_, err := st.Set(a, v)
		s.Require().NoError(err)
	}
	return Context{Snapshot: st.Snapshot(), Status: status, QualificationsVerified: verified}
}

func (s *SequenceSuite) TestNewSequence() {
	s.Run("rejects duplicate slugs", func() {
		pages := testPages()
		pages[1].Slug = pages[0].Slug
		_, err := NewSequence(domain.PolicyStudentLoans, pages)
		s.True(pkgerrors.HasCode(err, pkgerrors.CodeConfigInvalid))
	})

	s.Run("requires the summary page last", func() {
		_, err := NewSequence(domain.PolicyStudentLoans, testPages()[:3])
		s.True(pkgerrors.HasCode(err, pkgerrors.CodeConfigInvalid))
	})
}

func (s *SequenceSuite) TestSlugs() {
	s.Run("conditional pages appear only once their gate answers", func() {
		ctx := s.context(eligibility.StatusUndetermined, false, nil)
		s.Equal([]domain.Slug{"first", "extra", "qualification", SlugCheckYourAnswers}, s.seq.Slugs(ctx))

		ctx = s.context(eligibility.StatusUndetermined, false, map[answers.Attribute]any{attrExtra: true})
		s.Equal([]domain.Slug{"first", "extra", "extra-detail", "qualification", SlugCheckYourAnswers}, s.seq.Slugs(ctx))

		ctx = s.context(eligibility.StatusUndetermined, false, map[answers.Attribute]any{attrExtra: false})
		s.Equal([]domain.Slug{"first", "extra", "qualification", SlugCheckYourAnswers}, s.seq.Slugs(ctx))
	})

	s.Run("verified qualification pages are suppressed", func() {
		ctx := s.context(eligibility.StatusUndetermined, true, nil)
		s.Equal([]domain.Slug{"first", "extra", SlugCheckYourAnswers}, s.seq.Slugs(ctx))
	})

	s.Run("recomputation is deterministic", func() {
		ctx := s.context(eligibility.StatusUndetermined, false, map[answers.Attribute]any{attrExtra: true})
		s.Equal(s.seq.Slugs(ctx), s.seq.Slugs(ctx))
	})

	s.Run("ineligible cuts after the answered prefix", func() {
		ctx := s.context(eligibility.StatusIneligible, false, map[answers.Attribute]any{attrFirst: true})
		s.Equal([]domain.Slug{"first", SlugIneligible}, s.seq.Slugs(ctx))
	})

	s.Run("ineligible with everything answered appends the terminal page", func() {
		ctx := s.context(eligibility.StatusIneligible, true, map[answers.Attribute]any{
			attrFirst: true, attrExtra: false,
		})
		s.Equal([]domain.Slug{"first", "extra", SlugIneligible}, s.seq.Slugs(ctx))
	})
}

func (s *SequenceSuite) TestValidatePage() {
	s.Run("nil when every page attribute is present", func() {
		ctx := s.context(eligibility.StatusUndetermined, false, map[answers.Attribute]any{attrFirst: true})
		s.Nil(s.seq.ValidatePage("first", ctx.Snapshot))
	})

	s.Run("reports missing attributes with the configured message", func() {
		ctx := s.context(eligibility.StatusUndetermined, false, nil)
		verr := s.seq.ValidatePage("extra-detail", ctx.Snapshot)
		s.Require().NotNil(verr)
		s.Require().Len(verr.Fields, 1)
		s.Equal(attrDetail, verr.Fields[0].Attribute)
		s.Equal("Tell us more about the extra", verr.Fields[0].Message)
	})

	s.Run("falls back to the generic message", func() {
		verr := s.seq.ValidatePage("first", s.context(eligibility.StatusUndetermined, false, nil).Snapshot)
		s.Require().NotNil(verr)
		s.Equal("Select an answer to continue", verr.Fields[0].Message)
	})
}

func (s *SequenceSuite) TestValidateSubmit() {
	s.Run("requires every in-sequence question answered", func() {
		ctx := s.context(eligibility.StatusUndetermined, false, map[answers.Attribute]any{attrFirst: true})
		verr := s.seq.ValidateSubmit(ctx)
		s.Require().NotNil(verr)
		s.Len(verr.Fields, 2, "extra and qualification still open")
	})

	s.Run("does not re-impose questions on excluded pages", func() {
		ctx := s.context(eligibility.StatusUndetermined, true, map[answers.Attribute]any{
			attrFirst: true, attrExtra: false,
		})
		s.Nil(s.seq.ValidateSubmit(ctx), "detail and qualification pages are out of the sequence")
	})
}
