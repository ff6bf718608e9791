package handler

import (
	"time"

	"claimflow/internal/claim/models"
	"claimflow/internal/journey"
)

// StartResponse is the HTTP response for POST /claims.
type StartResponse struct {
	ClaimID   string `json:"claim_id"`
	FirstSlug string `json:"first_slug"`
}

// SlugResponse carries a single page slug.
type SlugResponse struct {
	Slug string `json:"slug"`
}

// SubmitPageResponse is the HTTP response for a page submission.
type SubmitPageResponse struct {
	NextSlug   string `json:"next_slug,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Status     string `json:"status,omitempty"`
}

// ValidationResponse carries per-field messages for an incomplete page.
type ValidationResponse struct {
	Error  string          `json:"error"`
	Fields []FieldResponse `json:"fields"`
}

// FieldResponse is one claimant-facing validation message.
type FieldResponse struct {
	Attribute string `json:"attribute"`
	Message   string `json:"message"`
}

// FromFieldErrors converts journey field errors to the HTTP form.
func FromFieldErrors(fields []journey.FieldError) []FieldResponse {
	out := make([]FieldResponse, len(fields))
	for i, f := range fields {
		out[i] = FieldResponse{Attribute: string(f.Attribute), Message: f.Message}
	}
	return out
}

// ClaimResponse is the HTTP response for GET /claims/{claimID}.
type ClaimResponse struct {
	ClaimID               string         `json:"claim_id"`
	Policy                string         `json:"policy"`
	Status                string         `json:"status"`
	Reason                string         `json:"reason,omitempty"`
	AwardAmountPence      int64          `json:"award_amount_pence"`
	Answers               map[string]any `json:"answers"`
	QualificationsChecked bool           `json:"qualifications_verified"`
	SubmittedAt           *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
}

// FromClaim converts a claim and its eligibility record to the HTTP form.
func FromClaim(claim *models.Claim, elig *models.EligibilityRecord) *ClaimResponse {
	return &ClaimResponse{
		ClaimID:               claim.ID.String(),
		Policy:                string(claim.Policy),
		Status:                string(elig.Status),
		Reason:                string(elig.Reason),
		AwardAmountPence:      elig.AwardAmount,
		Answers:               elig.Answers,
		QualificationsChecked: claim.QualificationsVerified,
		SubmittedAt:           claim.SubmittedAt,
		CreatedAt:             claim.CreatedAt,
	}
}
