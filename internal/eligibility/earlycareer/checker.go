// Package earlycareer implements eligibility for the early-career
// payment policy. The award is a flat amount; everything interesting is
// in the disqualifying conditions around the claimant's induction year,
// supply-teaching contract and ITT subject.
package earlycareer

import (
	"context"

	"claimflow/internal/answers"
	"claimflow/internal/dependency"
	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
)

const (
	AttrNQTAfterITT         answers.Attribute = "nqt_in_academic_year_after_itt"
	AttrSupplyTeacher       answers.Attribute = "employed_as_supply_teacher"
	AttrEntireTermContract  answers.Attribute = "has_entire_term_contract"
	AttrEmployedDirectly    answers.Attribute = "employed_directly"
	AttrDisciplinaryAction  answers.Attribute = "subject_to_disciplinary_action"
	AttrQualificationCourse answers.Attribute = "pgitt_or_ugitt_course"
	AttrEligibleITTSubject  answers.Attribute = "eligible_itt_subject"
	AttrTeachingSubjectNow  answers.Attribute = "teaching_subject_now"
	AttrITTAcademicYear     answers.Attribute = "itt_academic_year"
)

// ITT course types.
const (
	CoursePostgraduate  = "postgraduate"
	CourseUndergraduate = "undergraduate"
)

// ITT subjects. NoneOfTheAbove disqualifies.
const (
	SubjectChemistry       = "chemistry"
	SubjectMathematics     = "mathematics"
	SubjectModernLanguages = "modern_foreign_languages"
	SubjectPhysics         = "physics"
	SubjectNoneOfTheAbove  = "none_of_the_above"
)

// ITT academic year options. The window is fixed by the policy.
const (
	ITTYear2018 = "2018/2019"
	ITTYear2019 = "2019/2020"
	ITTYear2020 = "2020/2021"
	ITTYearNone = "none_of_the_above"
)

// Ineligibility reasons in priority order.
const (
	ReasonNQTAfterITT        eligibility.ReasonCode = "ineligible_nqt_in_academic_year_after_itt"
	ReasonNoTermContract     eligibility.ReasonCode = "no_entire_term_contract"
	ReasonNotEmployedDirect  eligibility.ReasonCode = "not_employed_directly"
	ReasonDisciplinaryAction eligibility.ReasonCode = "subject_to_disciplinary_action"
	ReasonITTSubject         eligibility.ReasonCode = "itt_subject_none_of_the_above"
	ReasonNotTeachingNow     eligibility.ReasonCode = "not_teaching_now_in_eligible_itt_subject"
	ReasonITTAcademicYear    eligibility.ReasonCode = "ineligible_itt_academic_year"
)

// awardAmountPence is the flat early-career payment.
const awardAmountPence int64 = 200_000

var schema = answers.NewSchema(
	answers.Spec{Name: AttrNQTAfterITT, Kind: answers.KindBool},
	answers.Spec{Name: AttrSupplyTeacher, Kind: answers.KindBool},
	answers.Spec{Name: AttrEntireTermContract, Kind: answers.KindBool},
	answers.Spec{Name: AttrEmployedDirectly, Kind: answers.KindBool},
	answers.Spec{Name: AttrDisciplinaryAction, Kind: answers.KindBool},
	answers.Spec{Name: AttrQualificationCourse, Kind: answers.KindEnum, Enum: []string{CoursePostgraduate, CourseUndergraduate}},
	answers.Spec{Name: AttrEligibleITTSubject, Kind: answers.KindEnum, Enum: []string{
		SubjectChemistry, SubjectMathematics, SubjectModernLanguages, SubjectPhysics, SubjectNoneOfTheAbove,
	}},
	answers.Spec{Name: AttrTeachingSubjectNow, Kind: answers.KindBool},
	answers.Spec{Name: AttrITTAcademicYear, Kind: answers.KindEnum, Enum: []string{
		ITTYear2018, ITTYear2019, ITTYear2020, ITTYearNone,
	}},
)

var graph = dependency.Graph{
	AttrSupplyTeacher:       {AttrEntireTermContract, AttrEmployedDirectly},
	AttrQualificationCourse: {AttrEligibleITTSubject, AttrTeachingSubjectNow},
	AttrEligibleITTSubject:  {AttrTeachingSubjectNow},
}

var rules = []eligibility.Rule{
	{Code: ReasonNQTAfterITT, Check: eligibility.BoolIs(AttrNQTAfterITT, false)},
	{Code: ReasonNoTermContract, Check: eligibility.All(
		eligibility.BoolIs(AttrSupplyTeacher, true),
		eligibility.BoolIs(AttrEntireTermContract, false),
	)},
	{Code: ReasonNotEmployedDirect, Check: eligibility.All(
		eligibility.BoolIs(AttrSupplyTeacher, true),
		eligibility.BoolIs(AttrEmployedDirectly, false),
	)},
	{Code: ReasonDisciplinaryAction, Check: eligibility.BoolIs(AttrDisciplinaryAction, true)},
	{Code: ReasonITTSubject, Check: eligibility.EnumIs(AttrEligibleITTSubject, SubjectNoneOfTheAbove)},
	{Code: ReasonNotTeachingNow, Check: eligibility.BoolIs(AttrTeachingSubjectNow, false)},
	{Code: ReasonITTAcademicYear, Check: eligibility.EnumIs(AttrITTAcademicYear, ITTYearNone)},
}

// Checker evaluates early-career payment eligibility.
type Checker struct{}

func New() *Checker { return &Checker{} }

func (*Checker) Policy() domain.Policy { return domain.PolicyEarlyCareer }

func (*Checker) Schema() *answers.Schema { return schema }

func (*Checker) DependencyGraph() dependency.Graph { return graph }

func (*Checker) VerifiedSuppressions() []answers.Attribute { return nil }

func (*Checker) Evaluate(snap answers.Snapshot) eligibility.Status {
	return eligibility.EvaluateRules(snap, rules)
}

func (*Checker) Reason(snap answers.Snapshot) (eligibility.ReasonCode, bool) {
	return eligibility.FirstReason(snap, rules)
}

func (*Checker) AwardAmount(context.Context, answers.Snapshot) (int64, error) {
	return awardAmountPence, nil
}
