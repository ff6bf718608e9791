// Package journey turns a claim's current answers into the ordered list
// of pages still required, and navigates a claimant through that list.
// Sequences are recomputed from scratch on every query so they always
// reflect the latest answers; nothing here mutates state.
package journey

import (
	"claimflow/internal/answers"
	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
)

// Slugs shared by every policy.
const (
	SlugCheckYourAnswers domain.Slug = "check-your-answers"
	SlugIneligible       domain.Slug = "ineligible"
	// SlugConfirmation is the terminal marker returned by Advance after
	// the last in-sequence page is completed.
	SlugConfirmation domain.Slug = "confirmation"
)

// Context is the answer snapshot a sequence is computed from. Sequences
// are deterministic given the same Context.
type Context struct {
	Snapshot answers.Snapshot
	Status   eligibility.Status
	// QualificationsVerified marks claims whose qualification answers
	// were supplied by the trusted teaching-record check; pages asking
	// for those answers are suppressed.
	QualificationsVerified bool
}

// Condition gates a page's inclusion in the sequence.
type Condition func(Context) bool

// WhenBool includes a page while the attribute holds want. Absent counts
// as included so the claimant can still reach the page that asks.
func WhenBool(a answers.Attribute, want bool) Condition {
	return func(ctx Context) bool {
		v, ok := ctx.Snapshot.Bool(a)
		return !ok || v == want
	}
}

// WhenBoolAnswered includes a page only once the attribute holds want.
func WhenBoolAnswered(a answers.Attribute, want bool) Condition {
	return func(ctx Context) bool {
		v, ok := ctx.Snapshot.Bool(a)
		return ok && v == want
	}
}

// WhenEnumAnswered includes a page only once the attribute holds want.
func WhenEnumAnswered(a answers.Attribute, want string) Condition {
	return func(ctx Context) bool {
		v, ok := ctx.Snapshot.Enum(a)
		return ok && v == want
	}
}

// Page describes one step of a journey.
type Page struct {
	Slug domain.Slug
	// Attributes the claimant must answer on this page. Empty for
	// informational and summary pages.
	Attributes []answers.Attribute
	// Messages carries the per-field required messages shown when a
	// submission omits an attribute. Attributes without an entry get a
	// generic message.
	Messages map[answers.Attribute]string
	// Include gates the page; nil means always included.
	Include Condition
	// SkipWhenVerified suppresses the page when the claim's
	// qualification data came from the trusted teaching-record check.
	SkipWhenVerified bool
}

func (p Page) answered(snap answers.Snapshot) bool {
	if len(p.Attributes) == 0 {
		return false
	}
	for _, a := range p.Attributes {
		if !snap.Present(a) {
			return false
		}
	}
	return true
}

// Sequence is one policy's master page list plus inclusion logic.
type Sequence struct {
	policy domain.Policy
	pages  []Page
	bySlug map[domain.Slug]Page
}

// NewSequence builds a sequence, rejecting duplicate slugs. The master
// list must end with check-your-answers; the terminal ineligible page is
// implicit.
func NewSequence(policy domain.Policy, pages []Page) (*Sequence, error) {
	s := &Sequence{policy: policy, pages: pages, bySlug: make(map[domain.Slug]Page, len(pages))}
	for _, p := range pages {
		if _, dup := s.bySlug[p.Slug]; dup {
			return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "%s: duplicate slug %q", policy, p.Slug)
		}
		s.bySlug[p.Slug] = p
	}
	if len(pages) == 0 || pages[len(pages)-1].Slug != SlugCheckYourAnswers {
		return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "%s: master list must end with %q", policy, SlugCheckYourAnswers)
	}
	return s, nil
}

func (s *Sequence) Policy() domain.Policy { return s.policy }

// Page looks up a page descriptor by slug.
func (s *Sequence) Page(slug domain.Slug) (Page, bool) {
	p, ok := s.bySlug[slug]
	return p, ok
}

// Pages returns the master list in order.
func (s *Sequence) Pages() []Page {
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out
}

// Slugs computes the ordered pages currently required. Pages whose
// inclusion condition fails are removed; when the claim is ineligible the
// sequence is cut after the answered prefix and terminated with the
// ineligible page, suppressing everything later.
func (s *Sequence) Slugs(ctx Context) []domain.Slug {
	var out []domain.Slug
	for _, p := range s.pages {
		if p.Include != nil && !p.Include(ctx) {
			continue
		}
		if p.SkipWhenVerified && ctx.QualificationsVerified {
			continue
		}
		if ctx.Status == eligibility.StatusIneligible && !p.answered(ctx.Snapshot) {
			return append(out, SlugIneligible)
		}
		out = append(out, p.Slug)
	}
	if ctx.Status == eligibility.StatusIneligible {
		return append(out, SlugIneligible)
	}
	return out
}
