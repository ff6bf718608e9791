package journey

import "claimflow/pkg/domain"

// PageSequence navigates one claimant through a freshly computed slug
// sequence. It is built per request from the sequence, the completed
// pages for this journey instance, and the page being viewed.
type PageSequence struct {
	slugs     []domain.Slug
	completed map[domain.Slug]bool
	current   domain.Slug
}

// NewPageSequence computes the current slugs for ctx and wraps them with
// the claimant's completed set.
func NewPageSequence(seq *Sequence, ctx Context, completed []domain.Slug, current domain.Slug) *PageSequence {
	done := make(map[domain.Slug]bool, len(completed))
	for _, s := range completed {
		done[s] = true
	}
	return &PageSequence{slugs: seq.Slugs(ctx), completed: done, current: current}
}

// Slugs returns the sequence this navigator was computed over.
func (p *PageSequence) Slugs() []domain.Slug {
	out := make([]domain.Slug, len(p.slugs))
	copy(out, p.slugs)
	return out
}

// InSequence reports whether slug is currently reachable: it must be in
// the sequence and every page before it must already be completed. This
// guards deep links; an unreachable slug redirects to FurthestReachable,
// it never errors at the claimant.
func (p *PageSequence) InSequence(slug domain.Slug) bool {
	for _, s := range p.slugs {
		if s == slug {
			return true
		}
		if !p.completed[s] {
			return false
		}
	}
	return false
}

// FurthestReachable is the redirect target for unreachable deep links:
// the first not-yet-completed page, or the last page when everything is
// done.
func (p *PageSequence) FurthestReachable() domain.Slug {
	for _, s := range p.slugs {
		if !p.completed[s] {
			return s
		}
	}
	if len(p.slugs) == 0 {
		return ""
	}
	return p.slugs[len(p.slugs)-1]
}

// Advance returns the slug immediately after the current page in the
// recomputed sequence, or the confirmation marker when the current page
// is the last.
func (p *PageSequence) Advance() domain.Slug {
	for i, s := range p.slugs {
		if s != p.current {
			continue
		}
		if i+1 < len(p.slugs) {
			return p.slugs[i+1]
		}
		return SlugConfirmation
	}
	// The current page fell out of the sequence (an answer change removed
	// it); resume from the furthest valid page.
	return p.FurthestReachable()
}

// PreviousSlug looks backward from the current page through the
// completed set intersected with the current sequence. A page removed by
// a later answer change is never offered as a back-target.
func (p *PageSequence) PreviousSlug() (domain.Slug, bool) {
	idx := -1
	for i, s := range p.slugs {
		if s == p.current {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = len(p.slugs)
	}
	for i := idx - 1; i >= 0; i-- {
		if p.completed[p.slugs[i]] {
			return p.slugs[i], true
		}
	}
	return "", false
}
