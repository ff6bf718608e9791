package journey

import (
	"claimflow/internal/answers"
	"claimflow/internal/eligibility"
	"claimflow/internal/eligibility/earlycareer"
	"claimflow/internal/eligibility/levellingup"
	"claimflow/internal/eligibility/studentloans"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
)

// Shorthands to keep the page tables readable.
type (
	answersAttr = answers.Attribute
	messages    = map[answers.Attribute]string
)

// Registry maps each policy to its page sequence. Construction validates
// every page's attributes against the policy's answer schema, so a page
// referencing an unknown attribute prevents the journey from starting.
type Registry struct {
	sequences map[domain.Policy]*Sequence
}

// NewRegistry builds the sequences for the closed policy set and
// validates them against the eligibility registry's schemas.
func NewRegistry(checkers *eligibility.Registry) (*Registry, error) {
	r := &Registry{sequences: make(map[domain.Policy]*Sequence)}

	builders := map[domain.Policy]func() ([]Page, error){
		domain.PolicyStudentLoans: studentLoanPages,
		domain.PolicyEarlyCareer:  earlyCareerPages,
		domain.PolicyLevellingUp:  levellingUpPages,
	}

	for _, policy := range domain.Policies() {
		build, ok := builders[policy]
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "no page sequence for policy %q", policy)
		}
		pages, err := build()
		if err != nil {
			return nil, err
		}
		seq, err := NewSequence(policy, pages)
		if err != nil {
			return nil, err
		}
		checker, ok := checkers.For(policy)
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "no eligibility checker for policy %q", policy)
		}
		for _, p := range pages {
			for _, a := range p.Attributes {
				if _, ok := checker.Schema().Spec(a); !ok {
					return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "%s: page %q references unknown attribute %q", policy, p.Slug, a)
				}
			}
		}
		r.sequences[policy] = seq
	}
	return r, nil
}

// Sequence returns the page sequence for a policy.
func (r *Registry) Sequence(p domain.Policy) (*Sequence, bool) {
	seq, ok := r.sequences[p]
	return seq, ok
}

func studentLoanPages() ([]Page, error) {
	return []Page{
		{
			Slug:       "qts-year",
			Attributes: []answersAttr{studentloans.AttrQTSAwardYear},
			Messages: messages{
				studentloans.AttrQTSAwardYear: "Select when you completed your initial teacher training",
			},
		},
		{
			Slug:       "claim-school",
			Attributes: []answersAttr{studentloans.AttrClaimSchool, studentloans.AttrClaimSchoolEligible},
			Messages: messages{
				studentloans.AttrClaimSchool: "Select the school you were employed at",
			},
		},
		{
			Slug:       "subjects-taught",
			Attributes: []answersAttr{studentloans.AttrTaughtEligibleSubject},
			Messages: messages{
				studentloans.AttrTaughtEligibleSubject: "Select yes if you taught an eligible subject",
			},
		},
		{
			Slug:       "still-teaching",
			Attributes: []answersAttr{studentloans.AttrEmploymentStatus},
			Messages: messages{
				studentloans.AttrEmploymentStatus: "Select where you are currently employed",
			},
		},
		{
			Slug:       "current-school",
			Attributes: []answersAttr{studentloans.AttrCurrentSchool, studentloans.AttrCurrentSchoolEligible},
			Include:    WhenEnumAnswered(studentloans.AttrEmploymentStatus, studentloans.EmployedAtDifferentSchool),
			Messages: messages{
				studentloans.AttrCurrentSchool: "Select the school you are currently employed at",
			},
		},
		{
			Slug:       "leadership-position",
			Attributes: []answersAttr{studentloans.AttrHadLeadershipPosition},
			Messages: messages{
				studentloans.AttrHadLeadershipPosition: "Select yes if you were employed in a leadership position",
			},
		},
		{
			Slug:       "mostly-performed-leadership-duties",
			Attributes: []answersAttr{studentloans.AttrMostlyLeadership},
			Include:    WhenBoolAnswered(studentloans.AttrHadLeadershipPosition, true),
			Messages: messages{
				studentloans.AttrMostlyLeadership: "Select yes if you spent more than half your time on leadership duties",
			},
		},
		{
			Slug:       "student-loan",
			Attributes: []answersAttr{studentloans.AttrHasStudentLoan},
			Messages: messages{
				studentloans.AttrHasStudentLoan: "Select yes if you have a student loan",
			},
		},
		{
			Slug:       "student-loan-amount",
			Attributes: []answersAttr{studentloans.AttrRepaymentAmount},
			Include:    WhenBoolAnswered(studentloans.AttrHasStudentLoan, true),
			Messages: messages{
				studentloans.AttrRepaymentAmount: "Enter the student loan repayments you made",
			},
		},
		{Slug: SlugCheckYourAnswers},
	}, nil
}

func earlyCareerPages() ([]Page, error) {
	return []Page{
		{
			Slug:       "nqt-in-academic-year-after-itt",
			Attributes: []answersAttr{earlycareer.AttrNQTAfterITT},
			Messages: messages{
				earlycareer.AttrNQTAfterITT: "Select yes if you did your NQT in the academic year after your ITT",
			},
		},
		{
			Slug:       "supply-teacher",
			Attributes: []answersAttr{earlycareer.AttrSupplyTeacher},
			Messages: messages{
				earlycareer.AttrSupplyTeacher: "Select yes if you are currently employed as a supply teacher",
			},
		},
		{
			Slug:       "entire-term-contract",
			Attributes: []answersAttr{earlycareer.AttrEntireTermContract},
			Include:    WhenBoolAnswered(earlycareer.AttrSupplyTeacher, true),
			Messages: messages{
				earlycareer.AttrEntireTermContract: "Select yes if you have a contract to teach at the same school for one term or longer",
			},
		},
		{
			Slug:       "employed-directly",
			Attributes: []answersAttr{earlycareer.AttrEmployedDirectly},
			Include:    WhenBoolAnswered(earlycareer.AttrSupplyTeacher, true),
			Messages: messages{
				earlycareer.AttrEmployedDirectly: "Select yes if you are employed directly by your school",
			},
		},
		{
			Slug:       "disciplinary-action",
			Attributes: []answersAttr{earlycareer.AttrDisciplinaryAction},
			Messages: messages{
				earlycareer.AttrDisciplinaryAction: "Select yes if you are subject to disciplinary action",
			},
		},
		{
			Slug:       "postgraduate-itt-or-undergraduate-itt-course",
			Attributes: []answersAttr{earlycareer.AttrQualificationCourse},
			Messages: messages{
				earlycareer.AttrQualificationCourse: "Select postgraduate if you did a postgraduate ITT course",
			},
		},
		{
			Slug:       "eligible-itt-subject",
			Attributes: []answersAttr{earlycareer.AttrEligibleITTSubject},
			Messages: messages{
				earlycareer.AttrEligibleITTSubject: "Select the subject of your initial teacher training",
			},
		},
		{
			Slug:       "teaching-subject-now",
			Attributes: []answersAttr{earlycareer.AttrTeachingSubjectNow},
			Messages: messages{
				earlycareer.AttrTeachingSubjectNow: "Select yes if you are currently teaching your ITT subject",
			},
		},
		{
			Slug:       "itt-year",
			Attributes: []answersAttr{earlycareer.AttrITTAcademicYear},
			Messages: messages{
				earlycareer.AttrITTAcademicYear: "Select the academic year you started your initial teacher training",
			},
		},
		{Slug: SlugCheckYourAnswers},
	}, nil
}

func levellingUpPages() ([]Page, error) {
	return []Page{
		{
			Slug:       "current-school",
			Attributes: []answersAttr{levellingup.AttrCurrentSchool, levellingup.AttrCurrentSchoolEligible},
			Messages: messages{
				levellingup.AttrCurrentSchool: "Select the school you are currently employed at",
			},
		},
		{
			Slug:       "supply-teacher",
			Attributes: []answersAttr{levellingup.AttrSupplyTeacher},
			Messages: messages{
				levellingup.AttrSupplyTeacher: "Select yes if you are currently employed as a supply teacher",
			},
		},
		{
			Slug:       "entire-term-contract",
			Attributes: []answersAttr{levellingup.AttrEntireTermContract},
			Include:    WhenBoolAnswered(levellingup.AttrSupplyTeacher, true),
			Messages: messages{
				levellingup.AttrEntireTermContract: "Select yes if you have a contract to teach at the same school for one term or longer",
			},
		},
		{
			Slug:       "employed-directly",
			Attributes: []answersAttr{levellingup.AttrEmployedDirectly},
			Include:    WhenBoolAnswered(levellingup.AttrSupplyTeacher, true),
			Messages: messages{
				levellingup.AttrEmployedDirectly: "Select yes if you are employed directly by your school",
			},
		},
		{
			Slug: "poor-performance",
			Attributes: []answersAttr{
				levellingup.AttrPerformanceAction,
				levellingup.AttrDisciplinaryAction,
			},
			Messages: messages{
				levellingup.AttrPerformanceAction:  "Select yes if you are subject to formal action for poor performance",
				levellingup.AttrDisciplinaryAction: "Select yes if you are subject to disciplinary action",
			},
		},
		{
			Slug:             "qualification",
			Attributes:       []answersAttr{levellingup.AttrQualification},
			SkipWhenVerified: true,
			Messages: messages{
				levellingup.AttrQualification: "Select the route you took into teaching",
			},
		},
		{
			Slug:             "eligible-itt-subject",
			Attributes:       []answersAttr{levellingup.AttrEligibleITTSubject},
			SkipWhenVerified: true,
			Messages: messages{
				levellingup.AttrEligibleITTSubject: "Select the subject of your initial teacher training",
			},
		},
		{
			Slug:       "eligible-degree-subject",
			Attributes: []answersAttr{levellingup.AttrEligibleDegreeSubject},
			Include:    WhenEnumAnswered(levellingup.AttrEligibleITTSubject, levellingup.SubjectNoneOfTheAbove),
			Messages: messages{
				levellingup.AttrEligibleDegreeSubject: "Select yes if your degree was in an eligible subject",
			},
		},
		{
			Slug:       "teaching-subject-now",
			Attributes: []answersAttr{levellingup.AttrTeachingSubjectNow},
			Messages: messages{
				levellingup.AttrTeachingSubjectNow: "Select yes if you are currently teaching your ITT subject",
			},
		},
		{
			Slug:             "itt-year",
			Attributes:       []answersAttr{levellingup.AttrITTAcademicYear},
			SkipWhenVerified: true,
			Messages: messages{
				levellingup.AttrITTAcademicYear: "Select the academic year you started your initial teacher training",
			},
		},
		{Slug: SlugCheckYourAnswers},
	}, nil
}
