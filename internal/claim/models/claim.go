// Package models holds the claim aggregate and its attached records.
package models

import (
	"time"

	"github.com/go-playground/validator/v10"

	"claimflow/internal/eligibility"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
)

// PersonalDetails are the claimant identity fields cross-checked against
// the teaching record after submission. Formats are enforced at the
// final-submission context, not page by page.
type PersonalDetails struct {
	FirstName              string `validate:"required,max=100"`
	Surname                string `validate:"required,max=100"`
	DateOfBirth            string `validate:"required,datetime=2006-01-02"`
	NationalInsuranceNo    string `validate:"required,len=9"`
	TeacherReferenceNumber string `validate:"required,len=7,numeric"`
	Email                  string `validate:"required,email"`
}

// BankDetails is where an approved claim is paid.
type BankDetails struct {
	AccountName   string `validate:"required,max=60"`
	SortCode      string `validate:"required,len=6,numeric"`
	AccountNumber string `validate:"required,len=8,numeric"`
	RollNumber    string `validate:"omitempty,max=18"`
}

// Claim is the aggregate root a claimant is completing. It is owned by
// the journey until submission; afterwards it is frozen and only
// annotated with tasks and notes, or amended through the explicit
// amendment path.
type Claim struct {
	ID       domain.ClaimID
	Policy   domain.Policy
	Personal PersonalDetails
	Bank     BankDetails
	// QualificationsVerified marks qualification answers as supplied by
	// the trusted teaching-record check; dependency nulling of those
	// answers is suppressed.
	QualificationsVerified bool
	// Version is the optimistic-concurrency token; every successful
	// update increments it.
	Version     int64
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Submitted reports whether the claim is frozen.
func (c *Claim) Submitted() bool { return c.SubmittedAt != nil }

var validate = validator.New()

// ValidateForSubmission enforces the final-submission context on the
// claimant's personal and bank details. Errors carry one message per
// offending field.
func (c *Claim) ValidateForSubmission() error {
	if err := validate.Struct(c.Personal); err != nil {
		return submissionError("personal details", err)
	}
	if err := validate.Struct(c.Bank); err != nil {
		return submissionError("bank details", err)
	}
	return nil
}

func submissionError(section string, err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return pkgerrors.Newf(pkgerrors.CodeValidationFailed, "%s: %s is missing or malformed", section, fieldErrs[0].Field())
	}
	return pkgerrors.Wrap(err, pkgerrors.CodeValidationFailed, section)
}

// EligibilityRecord is the one-to-one policy answer aggregate attached to
// a claim, together with its derived classification. Answers are stored
// raw; the answer schema revalidates them on load.
type EligibilityRecord struct {
	ClaimID domain.ClaimID
	Policy  domain.Policy
	Answers map[string]any
	Status  eligibility.Status
	// Reason is set only when Status is ineligible.
	Reason eligibility.ReasonCode
	// AwardAmount is the computed award in pence; zero when no award
	// table row matches or the policy has no amount yet.
	AwardAmount int64
}

// Clone deep-copies the record so callers can mutate without aliasing
// store state.
func (r *EligibilityRecord) Clone() *EligibilityRecord {
	out := *r
	out.Answers = make(map[string]any, len(r.Answers))
	for k, v := range r.Answers {
		out.Answers[k] = v
	}
	return &out
}
