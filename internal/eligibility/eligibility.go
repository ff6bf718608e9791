// Package eligibility defines the shared contract every payment policy's
// eligibility checker satisfies: a tri-state evaluation over an answer
// snapshot, a priority-ordered ineligibility reason, an award amount and
// a dependency graph. Concrete policies live in subpackages.
package eligibility

import (
	"context"

	"claimflow/internal/answers"
	"claimflow/internal/dependency"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
)

// Status is the tri-state outcome of an eligibility evaluation.
type Status string

const (
	StatusEligible     Status = "eligible"
	StatusIneligible   Status = "ineligible"
	StatusUndetermined Status = "undetermined"
)

// ReasonCode names the disqualifying condition that made a claim
// ineligible.
type ReasonCode string

// Tri is a three-valued predicate result. Unknown means a referenced
// answer is absent, which keeps evaluation safe on partially-filled
// claims.
type Tri int

const (
	False Tri = iota
	True
	Unknown
)

// Rule pairs a reason code with its disqualifying predicate. Rule order
// in a policy's list is the reason priority order: when several rules are
// simultaneously true, the first one's code wins.
type Rule struct {
	Code  ReasonCode
	Check func(answers.Snapshot) Tri
}

// Checker is the polymorphism point shared by all policies.
type Checker interface {
	Policy() domain.Policy
	// Schema declares the policy's answer attributes and domains.
	Schema() *answers.Schema
	// DependencyGraph maps attributes to the dependent answers nulled
	// when they change.
	DependencyGraph() dependency.Graph
	// VerifiedSuppressions lists the attributes whose outgoing dependency
	// edges are suppressed when the claim's qualification data came from
	// a trusted external check.
	VerifiedSuppressions() []answers.Attribute
	// Evaluate classifies the answers. Pure: no I/O, no side effects,
	// safe on any partial answer set.
	Evaluate(answers.Snapshot) Status
	// Reason returns the highest-priority true disqualifying condition.
	Reason(answers.Snapshot) (ReasonCode, bool)
	// AwardAmount computes the award in pence. Policies backed by an
	// award table return zero, not an error, when no row matches.
	AwardAmount(ctx context.Context, snap answers.Snapshot) (int64, error)
}

// EvaluateRules applies the shared tie-break: any true rule makes the
// claim ineligible; otherwise any unknown rule leaves it undetermined;
// only a full set of false rules is eligible.
func EvaluateRules(snap answers.Snapshot, rules []Rule) Status {
	undetermined := false
	for _, r := range rules {
		switch r.Check(snap) {
		case True:
			return StatusIneligible
		case Unknown:
			undetermined = true
		}
	}
	if undetermined {
		return StatusUndetermined
	}
	return StatusEligible
}

// FirstReason returns the first rule, in declared order, whose predicate
// is true. Earlier rules shadow later ones when several are true at once.
func FirstReason(snap answers.Snapshot, rules []Rule) (ReasonCode, bool) {
	for _, r := range rules {
		if r.Check(snap) == True {
			return r.Code, true
		}
	}
	return "", false
}

// Registry holds the closed set of policy checkers. Construction
// validates every dependency graph so a cyclic configuration prevents
// startup instead of corrupting a live journey.
type Registry struct {
	checkers map[domain.Policy]Checker
}

// NewRegistry builds and validates the checker set.
func NewRegistry(checkers ...Checker) (*Registry, error) {
	r := &Registry{checkers: make(map[domain.Policy]Checker, len(checkers))}
	for _, c := range checkers {
		p := c.Policy()
		if !p.IsValid() {
			return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "checker registered for unknown policy %q", p)
		}
		if _, dup := r.checkers[p]; dup {
			return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "duplicate checker for policy %q", p)
		}
		if err := dependency.Validate(c.DependencyGraph()); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeConfigInvalid, string(p)+" dependency graph")
		}
		for _, a := range append(graphAttributes(c.DependencyGraph()), c.VerifiedSuppressions()...) {
			if _, ok := c.Schema().Spec(a); !ok {
				return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "%s dependency graph references unknown attribute %q", p, a)
			}
		}
		r.checkers[p] = c
	}
	return r, nil
}

// For returns the checker for a policy.
func (r *Registry) For(p domain.Policy) (Checker, bool) {
	c, ok := r.checkers[p]
	return c, ok
}

func graphAttributes(g dependency.Graph) []answers.Attribute {
	var out []answers.Attribute
	for a, deps := range g {
		out = append(out, a)
		out = append(out, deps...)
	}
	return out
}
