package earlycareer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"claimflow/internal/answers"
	"claimflow/internal/eligibility"
)

type CheckerSuite struct {
	suite.Suite
	checker *Checker
}

func TestCheckerSuite(t *testing.T) {
	suite.Run(t, new(CheckerSuite))
}

func (s *CheckerSuite) SetupTest() {
	s.checker = New()
}

func (s *CheckerSuite) snapshot(values map[answers.Attribute]any) answers.Snapshot {
	st := answers.NewStore(s.checker.Schema())
	for a, v := range values {
		_, err := st.Set(a, v)
		s.Require().NoError(err)
	}
	return st.Snapshot()
}

func (s *CheckerSuite) eligibleAnswers() map[answers.Attribute]any {
	return map[answers.Attribute]any{
		AttrNQTAfterITT:         true,
		AttrSupplyTeacher:       false,
		AttrDisciplinaryAction:  false,
		AttrQualificationCourse: CoursePostgraduate,
		AttrEligibleITTSubject:  SubjectMathematics,
		AttrTeachingSubjectNow:  true,
		AttrITTAcademicYear:     ITTYear2018,
	}
}

func (s *CheckerSuite) TestEvaluate() {
	s.Run("a qualifying claim is eligible", func() {
		s.Equal(eligibility.StatusEligible, s.checker.Evaluate(s.snapshot(s.eligibleAnswers())))
	})

	s.Run("induction outside the year after ITT disqualifies", func() {
		snap := s.snapshot(map[answers.Attribute]any{AttrNQTAfterITT: false})
		s.Equal(eligibility.StatusIneligible, s.checker.Evaluate(snap))
		code, _ := s.checker.Reason(snap)
		s.Equal(ReasonNQTAfterITT, code)
	})

	s.Run("supply teaching needs a term contract and direct employment", func() {
		a := s.eligibleAnswers()
		a[AttrSupplyTeacher] = true
		snap := s.snapshot(a)
		s.Equal(eligibility.StatusUndetermined, s.checker.Evaluate(snap), "contract questions still open")

		a[AttrEntireTermContract] = false
		a[AttrEmployedDirectly] = true
		snap = s.snapshot(a)
		code, _ := s.checker.Reason(snap)
		s.Equal(ReasonNoTermContract, code)

		a[AttrEntireTermContract] = true
		a[AttrEmployedDirectly] = false
		snap = s.snapshot(a)
		code, _ = s.checker.Reason(snap)
		s.Equal(ReasonNotEmployedDirect, code)

		a[AttrEmployedDirectly] = true
		s.Equal(eligibility.StatusEligible, s.checker.Evaluate(s.snapshot(a)))
	})

	s.Run("an ITT subject outside the list disqualifies", func() {
		a := s.eligibleAnswers()
		a[AttrEligibleITTSubject] = SubjectNoneOfTheAbove
		snap := s.snapshot(a)
		s.Equal(eligibility.StatusIneligible, s.checker.Evaluate(snap))
		code, _ := s.checker.Reason(snap)
		s.Equal(ReasonITTSubject, code)
	})

	s.Run("an ITT year outside the window disqualifies", func() {
		a := s.eligibleAnswers()
		a[AttrITTAcademicYear] = ITTYearNone
		snap := s.snapshot(a)
		s.Equal(eligibility.StatusIneligible, s.checker.Evaluate(snap))
		code, _ := s.checker.Reason(snap)
		s.Equal(ReasonITTAcademicYear, code)
	})
}

func (s *CheckerSuite) TestAwardAmount() {
	amount, err := s.checker.AwardAmount(context.Background(), s.snapshot(nil))
	s.Require().NoError(err)
	s.Equal(int64(200_000), amount, "flat payment regardless of answers")
}
