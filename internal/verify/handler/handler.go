// Package handler exposes the automated check endpoints used by the ops
// tooling once a claim is submitted.
package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"claimflow/internal/claim/models"
	"claimflow/internal/verify"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
	"claimflow/pkg/platform/httputil"
)

// ClaimGetter loads the claim a check runs against.
type ClaimGetter interface {
	Claim(ctx context.Context, id domain.ClaimID) (*models.Claim, *models.EligibilityRecord, error)
}

// Handler exposes verification checks over HTTP.
type Handler struct {
	claims   ClaimGetter
	verifier *verify.Verifier
	log      *log.Logger
}

// New constructs a verify handler with its dependencies.
func New(claims ClaimGetter, verifier *verify.Verifier, logger *log.Logger) *Handler {
	return &Handler{claims: claims, verifier: verifier, log: logger}
}

// Register mounts check endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/claims/{claimID}/checks/identity-confirmation", h.HandleIdentityCheck)
}

// IdentityCheckRequest is the HTTP request body for the identity check.
// Record is the teaching-record entry looked up by the caller; null
// means no entry was found.
type IdentityCheckRequest struct {
	Record *RecordRequest `json:"record"`
}

// RecordRequest mirrors verify.TeacherRecord on the wire.
type RecordRequest struct {
	TeacherReferenceNumber string `json:"teacher_reference_number"`
	NationalInsuranceNo    string `json:"national_insurance_number"`
	FirstName              string `json:"first_name"`
	Surname                string `json:"surname"`
	DateOfBirth            string `json:"date_of_birth"`
	ActiveAlert            bool   `json:"active_alert"`
}

// TaskResponse is the HTTP response for a completed check.
type TaskResponse struct {
	TaskID    string    `json:"task_id"`
	Name      string    `json:"name"`
	Match     string    `json:"match"`
	Passed    *bool     `json:"passed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleIdentityCheck handles POST
// /claims/{claimID}/checks/identity-confirmation.
func (h *Handler) HandleIdentityCheck(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		httputil.WriteError(w, pkgerrors.Wrap(err, pkgerrors.CodeNotFound, "no such claim"))
		return
	}
	req, ok := httputil.Decode[IdentityCheckRequest](w, r)
	if !ok {
		return
	}

	claim, _, err := h.claims.Claim(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !claim.Submitted() {
		httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeValidationFailed, "checks run against submitted claims only"))
		return
	}

	var record *verify.TeacherRecord
	if req.Record != nil {
		record = &verify.TeacherRecord{
			TeacherReferenceNumber: req.Record.TeacherReferenceNumber,
			NationalInsuranceNo:    req.Record.NationalInsuranceNo,
			FirstName:              req.Record.FirstName,
			Surname:                req.Record.Surname,
			DateOfBirth:            req.Record.DateOfBirth,
			ActiveAlert:            req.Record.ActiveAlert,
		}
	}

	task, err := h.verifier.Perform(r.Context(), claim, record)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.log.Printf("identity check for claim %s: %s", id, task.Match)
	httputil.WriteJSON(w, http.StatusOK, TaskResponse{
		TaskID:    task.ID.String(),
		Name:      string(task.Name),
		Match:     string(task.Match),
		Passed:    task.Passed,
		CreatedAt: task.CreatedAt,
	})
}
