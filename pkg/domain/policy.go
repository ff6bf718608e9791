package domain

import pkgerrors "claimflow/pkg/errors"

// Policy discriminates which payment policy a claim is made under. Each
// policy carries its own eligibility checker, dependency graph and slug
// sequence; the set is closed and validated at startup.
type Policy string

const (
	PolicyStudentLoans Policy = "student-loans"
	PolicyEarlyCareer  Policy = "early-career-payments"
	PolicyLevellingUp  Policy = "levelling-up-premium-payments"
)

// validPolicies is the single source of truth for supported policies.
var validPolicies = map[Policy]bool{
	PolicyStudentLoans: true,
	PolicyEarlyCareer:  true,
	PolicyLevellingUp:  true,
}

// Policies lists every supported policy in a stable order.
func Policies() []Policy {
	return []Policy{PolicyStudentLoans, PolicyEarlyCareer, PolicyLevellingUp}
}

func (p Policy) IsValid() bool { return validPolicies[p] }

func (p Policy) String() string { return string(p) }

// ParsePolicy constructs a Policy from external input.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidationFailed, "policy cannot be empty")
	}
	p := Policy(s)
	if !p.IsValid() {
		return "", pkgerrors.Newf(pkgerrors.CodeValidationFailed, "unsupported policy %q", s)
	}
	return p, nil
}

// Slug is the opaque identifier of one page in a claim journey. The
// routing layer shares these values; the core never parses them.
type Slug string

func (s Slug) String() string { return string(s) }
