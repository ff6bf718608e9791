// Package service orchestrates the page-by-page claim journey: applying
// answers, nulling stale dependents, re-evaluating eligibility and
// recomputing the page sequence, all committed under a per-claim
// optimistic version check.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"claimflow/internal/answers"
	"claimflow/internal/awards"
	"claimflow/internal/claim/models"
	"claimflow/internal/claim/store"
	"claimflow/internal/dependency"
	"claimflow/internal/eligibility"
	"claimflow/internal/journey"
	journeystore "claimflow/internal/journey/store"
	"claimflow/internal/platform/metrics"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
	"claimflow/pkg/sentinel"
)

// Service is the claim journey orchestrator.
type Service struct {
	claims    store.Store
	completed journeystore.CompletedStore
	checkers  *eligibility.Registry
	pages     *journey.Registry
	awards    awards.Lookup
	metrics   *metrics.Metrics
	log       *log.Logger
}

// New wires the service. Every collaborator is required.
func New(
	claims store.Store,
	completed journeystore.CompletedStore,
	checkers *eligibility.Registry,
	pages *journey.Registry,
	awardTable awards.Lookup,
	m *metrics.Metrics,
	logger *log.Logger,
) (*Service, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "claim store is required")
	}
	if completed == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "completed-slugs store is required")
	}
	if checkers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "eligibility registry is required")
	}
	if pages == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "page registry is required")
	}
	if awardTable == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "award table is required")
	}
	if m == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "metrics are required")
	}
	if logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "logger is required")
	}
	return &Service{
		claims:    claims,
		completed: completed,
		checkers:  checkers,
		pages:     pages,
		awards:    awardTable,
		metrics:   m,
		log:       logger,
	}, nil
}

// SubmitResult reports the outcome of one page submission.
type SubmitResult struct {
	// NextSlug is the page to render next; SlugConfirmation after the
	// final page.
	NextSlug domain.Slug
	// RedirectTo is set instead of NextSlug when the requested page was
	// not reachable; the caller redirects without surfacing an error.
	RedirectTo domain.Slug
	// Validation carries field messages when the submission was
	// incomplete; nothing was persisted.
	Validation *journey.ValidationError
	// Status is the eligibility classification after this submission.
	Status eligibility.Status
}

type loaded struct {
	claim   *models.Claim
	elig    *models.EligibilityRecord
	checker eligibility.Checker
	seq     *journey.Sequence
	store   *answers.Store
}

func (s *Service) load(ctx context.Context, id domain.ClaimID) (*loaded, error) {
	claim, elig, err := s.claims.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeNotFound, "claim not found")
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load claim")
	}
	checker, ok := s.checkers.For(claim.Policy)
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "no eligibility checker for policy %q", claim.Policy)
	}
	seq, ok := s.pages.Sequence(claim.Policy)
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeConfigInvalid, "no page sequence for policy %q", claim.Policy)
	}
	ast := answers.NewStore(checker.Schema())
	if err := ast.LoadRaw(elig.Answers); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "stored answers no longer fit the schema")
	}
	return &loaded{claim: claim, elig: elig, checker: checker, seq: seq, store: ast}, nil
}

func (l *loaded) journeyContext() journey.Context {
	return journey.Context{
		Snapshot:               l.store.Snapshot(),
		Status:                 l.elig.Status,
		QualificationsVerified: l.claim.QualificationsVerified,
	}
}

// StartClaim creates a claim and its empty eligibility record for a
// policy and returns the first page of the journey.
func (s *Service) StartClaim(ctx context.Context, policy domain.Policy) (*models.Claim, domain.Slug, error) {
	checker, ok := s.checkers.For(policy)
	if !ok {
		return nil, "", pkgerrors.Newf(pkgerrors.CodeValidationFailed, "unsupported policy %q", policy)
	}
	seq, _ := s.pages.Sequence(policy)

	now := time.Now()
	claim := &models.Claim{
		ID:        domain.NewClaimID(),
		Policy:    policy,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	elig := &models.EligibilityRecord{
		ClaimID: claim.ID,
		Policy:  policy,
		Answers: map[string]any{},
		Status:  checker.Evaluate(answers.NewStore(checker.Schema()).Snapshot()),
	}
	if err := s.claims.Create(ctx, claim, elig); err != nil {
		return nil, "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "create claim")
	}
	if err := s.completed.Reset(ctx, claim.ID); err != nil {
		return nil, "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "reset journey state")
	}
	s.metrics.ClaimsStarted.WithLabelValues(string(policy)).Inc()

	first := seq.Slugs(journey.Context{Snapshot: answers.NewStore(checker.Schema()).Snapshot(), Status: elig.Status})[0]
	return claim, first, nil
}

// SubmitPage applies one page's answers. The sequence is recomputed
// before and after: before, to guard against deep links to unreachable
// pages; after, so the next page reflects the new answers.
func (s *Service) SubmitPage(ctx context.Context, id domain.ClaimID, slug domain.Slug, values map[string]any) (*SubmitResult, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.claim.Submitted() {
		return nil, pkgerrors.New(pkgerrors.CodeClaimSubmitted, "claim is frozen after submission")
	}

	completed, err := s.completed.Completed(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "read journey state")
	}
	nav := journey.NewPageSequence(l.seq, l.journeyContext(), completed, slug)
	if !nav.InSequence(slug) {
		return &SubmitResult{RedirectTo: nav.FurthestReachable(), Status: l.elig.Status}, nil
	}

	for name, v := range values {
		a := answers.Attribute(name)
		if v == nil {
			l.store.Clear(a)
			continue
		}
		if f, ok := v.(float64); ok {
			v = int64(f)
		}
		if _, err := l.store.Set(a, v); err != nil {
			var domainErr *answers.DomainError
			if errors.As(err, &domainErr) {
				return nil, pkgerrors.Wrap(err, pkgerrors.CodeDomainViolation, "answer outside attribute domain")
			}
			return nil, err
		}
	}

	if verr := l.seq.ValidatePage(slug, l.store.Snapshot()); verr != nil {
		return &SubmitResult{Validation: verr, Status: l.elig.Status}, nil
	}

	// Null stale dependents atomically with the triggering change: both
	// land in the same store update, or neither does.
	graph := l.checker.DependencyGraph()
	if l.claim.QualificationsVerified {
		graph = dependency.Suppress(graph, l.checker.VerifiedSuppressions()...)
	}
	for a := range dependency.Closure(l.store.Changed(), graph) {
		l.store.Clear(a)
	}

	snap := l.store.Snapshot()
	status := l.checker.Evaluate(snap)
	award, err := l.checker.AwardAmount(ctx, snap)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "compute award amount")
	}

	updated := l.elig.Clone()
	updated.Answers = l.store.Raw()
	updated.Status = status
	updated.Reason = ""
	if status == eligibility.StatusIneligible {
		if code, ok := l.checker.Reason(snap); ok {
			updated.Reason = code
		}
	}
	updated.AwardAmount = award

	if err := s.claims.Update(ctx, l.claim, updated, l.claim.Version); err != nil {
		if errors.Is(err, sentinel.ErrStale) {
			s.metrics.StaleSubmissions.Inc()
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeStaleState, "claim changed underneath this submission, please try again")
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "persist answers")
	}
	l.store.Commit()

	if err := s.completed.MarkCompleted(ctx, id, slug); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "record completed page")
	}
	s.metrics.PagesSubmitted.WithLabelValues(string(l.claim.Policy)).Inc()
	s.metrics.EligibilityOutcomes.WithLabelValues(string(l.claim.Policy), string(status)).Inc()

	after := journey.Context{Snapshot: snap, Status: status, QualificationsVerified: l.claim.QualificationsVerified}
	next := journey.NewPageSequence(l.seq, after, append(completed, slug), slug).Advance()
	return &SubmitResult{NextSlug: next, Status: status}, nil
}

// CurrentSlug returns the page the claimant should be on: the first
// not-yet-completed page of the current sequence.
func (s *Service) CurrentSlug(ctx context.Context, id domain.ClaimID) (domain.Slug, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	completed, err := s.completed.Completed(ctx, id)
	if err != nil {
		return "", pkgerrors.Wrap(err, pkgerrors.CodeInternal, "read journey state")
	}
	return journey.NewPageSequence(l.seq, l.journeyContext(), completed, "").FurthestReachable(), nil
}

// PreviousSlug returns the back-link target from the given page, if any.
func (s *Service) PreviousSlug(ctx context.Context, id domain.ClaimID, current domain.Slug) (domain.Slug, bool, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return "", false, err
	}
	completed, err := s.completed.Completed(ctx, id)
	if err != nil {
		return "", false, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "read journey state")
	}
	prev, ok := journey.NewPageSequence(l.seq, l.journeyContext(), completed, current).PreviousSlug()
	return prev, ok, nil
}

// SetPersonalDetails updates the claimant identity fields. Formats are
// only enforced at final submission; partial entry is allowed here.
func (s *Service) SetPersonalDetails(ctx context.Context, id domain.ClaimID, details models.PersonalDetails) error {
	return s.updateClaim(ctx, id, func(c *models.Claim) { c.Personal = details })
}

// SetBankDetails updates where the award is paid.
func (s *Service) SetBankDetails(ctx context.Context, id domain.ClaimID, details models.BankDetails) error {
	return s.updateClaim(ctx, id, func(c *models.Claim) { c.Bank = details })
}

// MarkQualificationsVerified flags the claim's qualification answers as
// supplied by the trusted teaching-record check.
func (s *Service) MarkQualificationsVerified(ctx context.Context, id domain.ClaimID) error {
	return s.updateClaim(ctx, id, func(c *models.Claim) { c.QualificationsVerified = true })
}

func (s *Service) updateClaim(ctx context.Context, id domain.ClaimID, apply func(*models.Claim)) error {
	l, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if l.claim.Submitted() {
		return pkgerrors.New(pkgerrors.CodeClaimSubmitted, "claim is frozen after submission")
	}
	apply(l.claim)
	if err := s.claims.Update(ctx, l.claim, l.elig, l.claim.Version); err != nil {
		if errors.Is(err, sentinel.ErrStale) {
			return pkgerrors.Wrap(err, pkgerrors.CodeStaleState, "claim changed underneath this update, please try again")
		}
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "persist claim")
	}
	return nil
}

// SubmitClaim enforces the final-submission context and freezes the
// claim. Afterwards only tasks, notes and the amendment path may touch
// it.
func (s *Service) SubmitClaim(ctx context.Context, id domain.ClaimID) error {
	l, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if l.claim.Submitted() {
		return pkgerrors.New(pkgerrors.CodeClaimSubmitted, "claim has already been submitted")
	}
	ctxJourney := l.journeyContext()
	if l.elig.Status != eligibility.StatusEligible {
		return pkgerrors.Newf(pkgerrors.CodeValidationFailed, "claim is %s, not eligible", l.elig.Status)
	}
	if verr := l.seq.ValidateSubmit(ctxJourney); verr != nil {
		return pkgerrors.Wrap(verr, pkgerrors.CodeValidationFailed, "answers incomplete for submission")
	}
	if err := l.claim.ValidateForSubmission(); err != nil {
		return err
	}

	now := time.Now()
	l.claim.SubmittedAt = &now
	if err := s.claims.Update(ctx, l.claim, l.elig, l.claim.Version); err != nil {
		if errors.Is(err, sentinel.ErrStale) {
			return pkgerrors.Wrap(err, pkgerrors.CodeStaleState, "claim changed underneath this submission, please try again")
		}
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "submit claim")
	}
	s.metrics.ClaimsSubmitted.WithLabelValues(string(l.claim.Policy)).Inc()
	return nil
}

// AmendAward is the explicitly gated post-submission amendment: only the
// award amount may change, bounded by the award table for the claim
// year, and the amendment leaves a note.
func (s *Service) AmendAward(ctx context.Context, id domain.ClaimID, amountPence int64, amendedBy string) error {
	l, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !l.claim.Submitted() {
		return pkgerrors.New(pkgerrors.CodeValidationFailed, "only submitted claims can be amended")
	}
	max, err := s.awards.MaxAmount(ctx, domain.AcademicYearAt(time.Now()))
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "look up award bound")
	}
	if amountPence < 1 || (max > 0 && amountPence > max) {
		return pkgerrors.Newf(pkgerrors.CodeValidationFailed, "enter a positive amount up to %d pence (inclusive)", max)
	}

	updated := l.elig.Clone()
	updated.AwardAmount = amountPence
	if err := s.claims.Update(ctx, l.claim, updated, l.claim.Version); err != nil {
		if errors.Is(err, sentinel.ErrStale) {
			return pkgerrors.Wrap(err, pkgerrors.CodeStaleState, "claim changed underneath this amendment, please try again")
		}
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "amend award")
	}

	note := &models.Note{
		ID:        domain.NewNoteID(),
		ClaimID:   id,
		Body:      "Award amount amended",
		CreatedBy: amendedBy,
		CreatedAt: time.Now(),
	}
	if err := s.claims.AppendNote(ctx, note); err != nil {
		s.log.Printf("amend note for claim %s not recorded: %v", id, err)
	}
	return nil
}

// Claim returns the aggregate and its eligibility record.
func (s *Service) Claim(ctx context.Context, id domain.ClaimID) (*models.Claim, *models.EligibilityRecord, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return l.claim, l.elig, nil
}
