// Package levellingup implements eligibility for the levelling-up premium
// payment policy. The award is school-specific and comes from the award
// table; qualification answers verified by the teaching record service
// are protected from dependency nulling.
package levellingup

import (
	"context"

	"claimflow/internal/answers"
	"claimflow/internal/awards"
	"claimflow/internal/dependency"
	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
)

const (
	AttrCurrentSchool         answers.Attribute = "current_school"
	AttrCurrentSchoolEligible answers.Attribute = "current_school_eligible"
	AttrSupplyTeacher         answers.Attribute = "employed_as_supply_teacher"
	AttrEntireTermContract    answers.Attribute = "has_entire_term_contract"
	AttrEmployedDirectly      answers.Attribute = "employed_directly"
	AttrPerformanceAction     answers.Attribute = "subject_to_formal_performance_action"
	AttrDisciplinaryAction    answers.Attribute = "subject_to_disciplinary_action"
	AttrQualification         answers.Attribute = "qualification"
	AttrEligibleITTSubject    answers.Attribute = "eligible_itt_subject"
	AttrTeachingSubjectNow    answers.Attribute = "teaching_subject_now"
	AttrITTAcademicYear       answers.Attribute = "itt_academic_year"
	AttrEligibleDegreeSubject answers.Attribute = "eligible_degree_subject"
)

// Qualification routes.
const (
	QualificationPostgraduateITT    = "postgraduate_itt"
	QualificationUndergraduateITT   = "undergraduate_itt"
	QualificationAssessmentOnly     = "assessment_only"
	QualificationOverseasRecognised = "overseas_recognition"
)

// ITT subjects. ForeignLanguages is payable under early-career only;
// NoneOfTheAbove is recoverable through an eligible degree subject.
const (
	SubjectChemistry        = "chemistry"
	SubjectForeignLanguages = "foreign_languages"
	SubjectMathematics      = "mathematics"
	SubjectPhysics          = "physics"
	SubjectComputing        = "computing"
	SubjectNoneOfTheAbove   = "none_of_the_above"
)

// ITT academic year window for this policy.
var (
	firstITTYear = domain.NewAcademicYear(2017)
	lastITTYear  = domain.NewAcademicYear(2023)
)

// ITTYearNone is the explicit "none of these years" option.
const ITTYearNone = "None"

// Ineligibility reasons in priority order.
const (
	ReasonCurrentSchool      eligibility.ReasonCode = "ineligible_current_school"
	ReasonNoTermContract     eligibility.ReasonCode = "no_entire_term_contract"
	ReasonNotEmployedDirect  eligibility.ReasonCode = "not_employed_directly"
	ReasonPerformanceAction  eligibility.ReasonCode = "subject_to_formal_performance_action"
	ReasonDisciplinaryAction eligibility.ReasonCode = "subject_to_disciplinary_action"
	ReasonEcpOnlySubject     eligibility.ReasonCode = "itt_subject_ineligible"
	ReasonNoEligibleDegree   eligibility.ReasonCode = "itt_subject_and_no_eligible_degree"
	ReasonNotTeachingNow     eligibility.ReasonCode = "not_teaching_now_in_eligible_itt_subject"
	ReasonITTAcademicYear    eligibility.ReasonCode = "ineligible_itt_academic_year"
)

func ittYearOptions() []string {
	opts := []string{}
	for _, y := range firstITTYear.Range(lastITTYear) {
		opts = append(opts, y.String())
	}
	return append(opts, ITTYearNone)
}

var schema = answers.NewSchema(
	answers.Spec{Name: AttrCurrentSchool, Kind: answers.KindRef},
	answers.Spec{Name: AttrCurrentSchoolEligible, Kind: answers.KindBool},
	answers.Spec{Name: AttrSupplyTeacher, Kind: answers.KindBool},
	answers.Spec{Name: AttrEntireTermContract, Kind: answers.KindBool},
	answers.Spec{Name: AttrEmployedDirectly, Kind: answers.KindBool},
	answers.Spec{Name: AttrPerformanceAction, Kind: answers.KindBool},
	answers.Spec{Name: AttrDisciplinaryAction, Kind: answers.KindBool},
	answers.Spec{Name: AttrQualification, Kind: answers.KindEnum, Enum: []string{
		QualificationPostgraduateITT, QualificationUndergraduateITT,
		QualificationAssessmentOnly, QualificationOverseasRecognised,
	}},
	answers.Spec{Name: AttrEligibleITTSubject, Kind: answers.KindEnum, Enum: []string{
		SubjectChemistry, SubjectForeignLanguages, SubjectMathematics,
		SubjectPhysics, SubjectComputing, SubjectNoneOfTheAbove,
	}},
	answers.Spec{Name: AttrTeachingSubjectNow, Kind: answers.KindBool},
	answers.Spec{Name: AttrITTAcademicYear, Kind: answers.KindEnum, Enum: ittYearOptions()},
	answers.Spec{Name: AttrEligibleDegreeSubject, Kind: answers.KindBool},
)

var graph = dependency.Graph{
	AttrSupplyTeacher:      {AttrEntireTermContract, AttrEmployedDirectly},
	AttrQualification:      {AttrEligibleITTSubject, AttrTeachingSubjectNow},
	AttrEligibleITTSubject: {AttrTeachingSubjectNow, AttrEligibleDegreeSubject},
	AttrITTAcademicYear:    {AttrEligibleITTSubject},
}

// verifiedSuppressions lists the attributes whose dependency edges are
// dropped once qualification data has been confirmed against the
// teaching record: a later unrelated change must not erase verified
// answers. Explicit configuration; do not extend without policy sign-off.
var verifiedSuppressions = []answers.Attribute{
	AttrQualification,
	AttrEligibleITTSubject,
	AttrITTAcademicYear,
}

var rules = []eligibility.Rule{
	{Code: ReasonCurrentSchool, Check: eligibility.BoolIs(AttrCurrentSchoolEligible, false)},
	{Code: ReasonNoTermContract, Check: eligibility.All(
		eligibility.BoolIs(AttrSupplyTeacher, true),
		eligibility.BoolIs(AttrEntireTermContract, false),
	)},
	{Code: ReasonNotEmployedDirect, Check: eligibility.All(
		eligibility.BoolIs(AttrSupplyTeacher, true),
		eligibility.BoolIs(AttrEmployedDirectly, false),
	)},
	{Code: ReasonPerformanceAction, Check: eligibility.BoolIs(AttrPerformanceAction, true)},
	{Code: ReasonDisciplinaryAction, Check: eligibility.BoolIs(AttrDisciplinaryAction, true)},
	{Code: ReasonEcpOnlySubject, Check: eligibility.EnumIs(AttrEligibleITTSubject, SubjectForeignLanguages)},
	{Code: ReasonNoEligibleDegree, Check: eligibility.All(
		eligibility.EnumIs(AttrEligibleITTSubject, SubjectNoneOfTheAbove),
		eligibility.BoolIs(AttrEligibleDegreeSubject, false),
	)},
	{Code: ReasonNotTeachingNow, Check: eligibility.BoolIs(AttrTeachingSubjectNow, false)},
	{Code: ReasonITTAcademicYear, Check: eligibility.EnumIs(AttrITTAcademicYear, ITTYearNone)},
}

// Checker evaluates levelling-up premium payment eligibility.
type Checker struct {
	awards    awards.Lookup
	claimYear domain.AcademicYear
}

// New builds a checker that resolves award amounts from the award table
// for the given claim year.
func New(lookup awards.Lookup, claimYear domain.AcademicYear) *Checker {
	return &Checker{awards: lookup, claimYear: claimYear}
}

func (*Checker) Policy() domain.Policy { return domain.PolicyLevellingUp }

func (*Checker) Schema() *answers.Schema { return schema }

func (*Checker) DependencyGraph() dependency.Graph { return graph }

func (*Checker) VerifiedSuppressions() []answers.Attribute { return verifiedSuppressions }

func (*Checker) Evaluate(snap answers.Snapshot) eligibility.Status {
	return eligibility.EvaluateRules(snap, rules)
}

func (*Checker) Reason(snap answers.Snapshot) (eligibility.ReasonCode, bool) {
	return eligibility.FirstReason(snap, rules)
}

// AwardAmount looks up the premium for the claimant's current school in
// the claim year. No school answered, or no award row, means zero.
func (c *Checker) AwardAmount(ctx context.Context, snap answers.Snapshot) (int64, error) {
	ref, ok := snap.Ref(AttrCurrentSchool)
	if !ok {
		return 0, nil
	}
	school, err := domain.ParseSchoolID(ref)
	if err != nil {
		return 0, nil
	}
	return c.awards.Amount(ctx, school, c.claimYear)
}
