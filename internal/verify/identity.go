// Package verify runs automated checks on submitted claims against
// external records, recording the outcome as tasks and notes on the
// claim.
package verify

import (
	"context"
	"log"
	"strings"
	"time"

	"claimflow/internal/claim/models"
	"claimflow/internal/claim/store"
	"claimflow/internal/platform/metrics"
	"claimflow/internal/verify/notify"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
)

// TeacherRecord is the teaching-record entry a claim is checked against.
// Dates are ISO 8601 date strings, matching PersonalDetails.
type TeacherRecord struct {
	TeacherReferenceNumber string
	NationalInsuranceNo    string
	FirstName              string
	Surname                string
	DateOfBirth            string
	ActiveAlert            bool
}

const createdBy = "automated_checks"

const activeAlertNote = "IMPORTANT: Teacher's identity has an active alert. Speak to manager before checking this claim."

// Verifier performs the identity confirmation check.
type Verifier struct {
	claims   store.Store
	notifier notify.Notifier
	metrics  *metrics.Metrics
	log      *log.Logger
}

func NewVerifier(claims store.Store, notifier notify.Notifier, m *metrics.Metrics, logger *log.Logger) (*Verifier, error) {
	if claims == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "claim store is required")
	}
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "notifier is required")
	}
	if m == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "metrics are required")
	}
	if logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfigInvalid, "logger is required")
	}
	return &Verifier{claims: claims, notifier: notifier, metrics: m, log: logger}, nil
}

// Perform cross-checks the claim's personal details against the teaching
// record and appends an identity confirmation task. At most one such
// task ever exists per claim: a repeat call returns the existing task
// untouched. record is nil when no teaching-record entry was found.
func (v *Verifier) Perform(ctx context.Context, claim *models.Claim, record *TeacherRecord) (*models.Task, error) {
	if existing, err := v.existingTask(ctx, claim); existing != nil || err != nil {
		return existing, err
	}

	match := models.MatchNone
	var passed *bool
	var notes []string

	switch {
	case record == nil:
		notes = append(notes, "Not matched")
	default:
		notes = fieldNotes(claim.Personal, record)
		if len(notes) == 0 && !record.ActiveAlert {
			match = models.MatchAll
			yes := true
			passed = &yes
		} else {
			match = models.MatchAny
		}
	}

	for _, body := range notes {
		if err := v.appendNote(ctx, claim, body, false); err != nil {
			return nil, err
		}
	}
	if record != nil && record.ActiveAlert {
		if err := v.appendNote(ctx, claim, activeAlertNote, true); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ID:        domain.NewTaskID(),
		ClaimID:   claim.ID,
		Name:      models.TaskIdentityConfirmation,
		Match:     match,
		Passed:    passed,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if err := v.claims.AppendTask(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "record identity task")
	}

	v.metrics.IdentityChecks.WithLabelValues(string(match)).Inc()
	v.notifier.Queue(ctx, notify.Notification{
		ClaimID:    claim.ID,
		Policy:     claim.Policy,
		Event:      "identity_check_completed",
		Match:      string(match),
		OccurredAt: time.Now(),
	})
	return task, nil
}

func (v *Verifier) existingTask(ctx context.Context, claim *models.Claim) (*models.Task, error) {
	tasks, err := v.claims.TasksFor(ctx, claim.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "load claim tasks")
	}
	for i := range tasks {
		if tasks[i].Name == models.TaskIdentityConfirmation {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

func (v *Verifier) appendNote(ctx context.Context, claim *models.Claim, body string, important bool) error {
	note := &models.Note{
		ID:        domain.NewNoteID(),
		ClaimID:   claim.ID,
		Body:      body,
		Important: important,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if err := v.claims.AppendNote(ctx, note); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "record identity note")
	}
	return nil
}

// fieldNotes compares each identity field and returns one note body per
// mismatch, in checking order. Only names tolerate case differences.
func fieldNotes(p models.PersonalDetails, r *TeacherRecord) []string {
	var notes []string
	if p.NationalInsuranceNo != r.NationalInsuranceNo {
		notes = append(notes, "National Insurance number not matched")
	}
	if !strings.EqualFold(p.FirstName, r.FirstName) || !strings.EqualFold(p.Surname, r.Surname) {
		notes = append(notes, "First name or surname not matched")
	}
	if p.DateOfBirth != r.DateOfBirth {
		notes = append(notes, "Date of birth not matched")
	}
	if p.TeacherReferenceNumber != r.TeacherReferenceNumber {
		notes = append(notes, "Teacher reference number not matched")
	}
	return notes
}
