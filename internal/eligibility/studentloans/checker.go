// Package studentloans implements eligibility for the student loan
// repayment reimbursement policy.
package studentloans

import (
	"context"

	"claimflow/internal/answers"
	"claimflow/internal/dependency"
	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
)

// Answer attributes. School eligibility flags are derived from reference
// data when the claimant picks a school, which keeps Evaluate pure.
const (
	AttrQTSAwardYear          answers.Attribute = "qts_award_year"
	AttrClaimSchool           answers.Attribute = "claim_school"
	AttrClaimSchoolEligible   answers.Attribute = "claim_school_eligible"
	AttrEmploymentStatus      answers.Attribute = "employment_status"
	AttrCurrentSchool         answers.Attribute = "current_school"
	AttrCurrentSchoolEligible answers.Attribute = "current_school_eligible"
	AttrTaughtEligibleSubject answers.Attribute = "taught_eligible_subjects"
	AttrBiologyTaught         answers.Attribute = "biology_taught"
	AttrChemistryTaught       answers.Attribute = "chemistry_taught"
	AttrPhysicsTaught         answers.Attribute = "physics_taught"
	AttrComputingTaught       answers.Attribute = "computing_taught"
	AttrLanguagesTaught       answers.Attribute = "languages_taught"
	AttrHadLeadershipPosition answers.Attribute = "had_leadership_position"
	AttrMostlyLeadership      answers.Attribute = "mostly_performed_leadership_duties"
	AttrHasStudentLoan        answers.Attribute = "has_student_loan"
	AttrRepaymentAmount       answers.Attribute = "student_loan_repayment_amount"
)

// QTS award year options relative to the policy's qualifying cut-off.
const (
	QTSBeforeCutOff    = "before_cut_off_date"
	QTSOnOrAfterCutOff = "on_or_after_cut_off_date"
)

// Employment status options.
const (
	EmployedAtClaimSchool     = "claim_school"
	EmployedAtDifferentSchool = "different_school"
	NoSchool                  = "no_school"
)

// Ineligibility reasons in priority order.
const (
	ReasonQTSAwardYear       eligibility.ReasonCode = "ineligible_qts_award_year"
	ReasonClaimSchool        eligibility.ReasonCode = "ineligible_claim_school"
	ReasonNoLongerTeaching   eligibility.ReasonCode = "employed_at_no_school"
	ReasonCurrentSchool      eligibility.ReasonCode = "ineligible_current_school"
	ReasonSubjectsTaught     eligibility.ReasonCode = "not_taught_eligible_subjects"
	ReasonLeadershipDuties   eligibility.ReasonCode = "mostly_performed_leadership_duties"
	ReasonMadeZeroRepayments eligibility.ReasonCode = "made_zero_repayments"
)

var schema = answers.NewSchema(
	answers.Spec{Name: AttrQTSAwardYear, Kind: answers.KindEnum, Enum: []string{QTSBeforeCutOff, QTSOnOrAfterCutOff}},
	answers.Spec{Name: AttrClaimSchool, Kind: answers.KindRef},
	answers.Spec{Name: AttrClaimSchoolEligible, Kind: answers.KindBool},
	answers.Spec{Name: AttrEmploymentStatus, Kind: answers.KindEnum, Enum: []string{EmployedAtClaimSchool, EmployedAtDifferentSchool, NoSchool}},
	answers.Spec{Name: AttrCurrentSchool, Kind: answers.KindRef},
	answers.Spec{Name: AttrCurrentSchoolEligible, Kind: answers.KindBool},
	answers.Spec{Name: AttrTaughtEligibleSubject, Kind: answers.KindBool},
	answers.Spec{Name: AttrBiologyTaught, Kind: answers.KindBool},
	answers.Spec{Name: AttrChemistryTaught, Kind: answers.KindBool},
	answers.Spec{Name: AttrPhysicsTaught, Kind: answers.KindBool},
	answers.Spec{Name: AttrComputingTaught, Kind: answers.KindBool},
	answers.Spec{Name: AttrLanguagesTaught, Kind: answers.KindBool},
	answers.Spec{Name: AttrHadLeadershipPosition, Kind: answers.KindBool},
	answers.Spec{Name: AttrMostlyLeadership, Kind: answers.KindBool},
	answers.Spec{Name: AttrHasStudentLoan, Kind: answers.KindBool},
	answers.Spec{Name: AttrRepaymentAmount, Kind: answers.KindAmount},
)

var graph = dependency.Graph{
	AttrClaimSchool: {
		AttrTaughtEligibleSubject,
		AttrBiologyTaught, AttrChemistryTaught, AttrPhysicsTaught,
		AttrComputingTaught, AttrLanguagesTaught,
	},
	AttrEmploymentStatus: {AttrCurrentSchool, AttrCurrentSchoolEligible},
	AttrTaughtEligibleSubject: {
		AttrBiologyTaught, AttrChemistryTaught, AttrPhysicsTaught,
		AttrComputingTaught, AttrLanguagesTaught,
	},
	AttrHadLeadershipPosition: {AttrMostlyLeadership},
	AttrHasStudentLoan:        {AttrRepaymentAmount},
}

var rules = []eligibility.Rule{
	{Code: ReasonQTSAwardYear, Check: eligibility.EnumIs(AttrQTSAwardYear, QTSBeforeCutOff)},
	{Code: ReasonClaimSchool, Check: eligibility.BoolIs(AttrClaimSchoolEligible, false)},
	{Code: ReasonNoLongerTeaching, Check: eligibility.EnumIs(AttrEmploymentStatus, NoSchool)},
	{Code: ReasonCurrentSchool, Check: eligibility.All(
		eligibility.EnumIs(AttrEmploymentStatus, EmployedAtDifferentSchool),
		eligibility.BoolIs(AttrCurrentSchoolEligible, false),
	)},
	{Code: ReasonSubjectsTaught, Check: eligibility.BoolIs(AttrTaughtEligibleSubject, false)},
	{Code: ReasonLeadershipDuties, Check: eligibility.All(
		eligibility.BoolIs(AttrHadLeadershipPosition, true),
		eligibility.BoolIs(AttrMostlyLeadership, true),
	)},
	{Code: ReasonMadeZeroRepayments, Check: eligibility.All(
		eligibility.BoolIs(AttrHasStudentLoan, true),
		eligibility.AmountIs(AttrRepaymentAmount, 0),
	)},
}

// Checker evaluates student loan reimbursement eligibility.
type Checker struct{}

func New() *Checker { return &Checker{} }

func (*Checker) Policy() domain.Policy { return domain.PolicyStudentLoans }

func (*Checker) Schema() *answers.Schema { return schema }

func (*Checker) DependencyGraph() dependency.Graph { return graph }

// VerifiedSuppressions is empty: this policy's qualification answer has
// no dependents, so trusted-data suppression has nothing to protect.
func (*Checker) VerifiedSuppressions() []answers.Attribute { return nil }

func (*Checker) Evaluate(snap answers.Snapshot) eligibility.Status {
	return eligibility.EvaluateRules(snap, rules)
}

func (*Checker) Reason(snap answers.Snapshot) (eligibility.ReasonCode, bool) {
	return eligibility.FirstReason(snap, rules)
}

// AwardAmount reimburses the repayments the claimant made, so the award
// is the entered repayment amount.
func (*Checker) AwardAmount(_ context.Context, snap answers.Snapshot) (int64, error) {
	amount, _ := snap.Amount(AttrRepaymentAmount)
	return amount, nil
}
