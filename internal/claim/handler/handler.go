// Package handler wires the claim journey endpoints to the claim
// service. Transport only: decode, delegate, translate.
package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"claimflow/internal/claim/models"
	"claimflow/internal/claim/service"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
	"claimflow/pkg/platform/httputil"
)

// Service defines the claim operations the handler needs.
type Service interface {
	StartClaim(ctx context.Context, policy domain.Policy) (*models.Claim, domain.Slug, error)
	SubmitPage(ctx context.Context, id domain.ClaimID, slug domain.Slug, values map[string]any) (*service.SubmitResult, error)
	CurrentSlug(ctx context.Context, id domain.ClaimID) (domain.Slug, error)
	PreviousSlug(ctx context.Context, id domain.ClaimID, current domain.Slug) (domain.Slug, bool, error)
	SetPersonalDetails(ctx context.Context, id domain.ClaimID, details models.PersonalDetails) error
	SetBankDetails(ctx context.Context, id domain.ClaimID, details models.BankDetails) error
	SubmitClaim(ctx context.Context, id domain.ClaimID) error
	AmendAward(ctx context.Context, id domain.ClaimID, amountPence int64, amendedBy string) error
	Claim(ctx context.Context, id domain.ClaimID) (*models.Claim, *models.EligibilityRecord, error)
}

// Handler exposes the claim journey over HTTP.
type Handler struct {
	service Service
	log     *log.Logger
}

// New constructs a claim handler with its dependencies.
func New(service Service, logger *log.Logger) *Handler {
	return &Handler{service: service, log: logger}
}

// Register mounts claim endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/claims", h.HandleStart)
	r.Route("/claims/{claimID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Get("/slug", h.HandleCurrentSlug)
		r.Post("/pages/{slug}", h.HandleSubmitPage)
		r.Get("/pages/{slug}/back", h.HandleBack)
		r.Put("/personal-details", h.HandlePersonalDetails)
		r.Put("/bank-details", h.HandleBankDetails)
		r.Post("/submission", h.HandleSubmit)
		r.Post("/award-amendments", h.HandleAmendAward)
	})
}

func claimID(w http.ResponseWriter, r *http.Request) (domain.ClaimID, bool) {
	id, err := domain.ParseClaimID(chi.URLParam(r, "claimID"))
	if err != nil {
		httputil.WriteError(w, pkgerrors.Wrap(err, pkgerrors.CodeNotFound, "no such claim"))
		return id, false
	}
	return id, true
}

// HandleStart handles POST /claims.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[StartRequest](w, r)
	if !ok {
		return
	}
	claim, first, err := h.service.StartClaim(r.Context(), domain.Policy(req.Policy))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.log.Printf("claim %s started for policy %s", claim.ID, claim.Policy)
	httputil.WriteJSON(w, http.StatusCreated, StartResponse{
		ClaimID:   claim.ID.String(),
		FirstSlug: string(first),
	})
}

// HandleGet handles GET /claims/{claimID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	claim, elig, err := h.service.Claim(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromClaim(claim, elig))
}

// HandleCurrentSlug handles GET /claims/{claimID}/slug.
func (h *Handler) HandleCurrentSlug(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	slug, err := h.service.CurrentSlug(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SlugResponse{Slug: string(slug)})
}

// HandleSubmitPage handles POST /claims/{claimID}/pages/{slug}.
func (h *Handler) HandleSubmitPage(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[SubmitPageRequest](w, r)
	if !ok {
		return
	}
	res, err := h.service.SubmitPage(r.Context(), id, domain.Slug(chi.URLParam(r, "slug")), req.Answers)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	switch {
	case res.RedirectTo != "":
		w.Header().Set("Location", "/claims/"+id.String()+"/pages/"+string(res.RedirectTo))
		httputil.WriteJSON(w, httputil.StatusOf(pkgerrors.CodeUnreachablePage),
			SubmitPageResponse{RedirectTo: string(res.RedirectTo)})
	case res.Validation != nil:
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
			Error:  string(pkgerrors.CodeValidationFailed),
			Fields: FromFieldErrors(res.Validation.Fields),
		})
	default:
		httputil.WriteJSON(w, http.StatusOK, SubmitPageResponse{
			NextSlug: string(res.NextSlug),
			Status:   string(res.Status),
		})
	}
}

// HandleBack handles GET /claims/{claimID}/pages/{slug}/back.
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	prev, found, err := h.service.PreviousSlug(r.Context(), id, domain.Slug(chi.URLParam(r, "slug")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SlugResponse{Slug: string(prev)})
}

// HandlePersonalDetails handles PUT /claims/{claimID}/personal-details.
func (h *Handler) HandlePersonalDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[PersonalDetailsRequest](w, r)
	if !ok {
		return
	}
	if err := h.service.SetPersonalDetails(r.Context(), id, req.Model()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBankDetails handles PUT /claims/{claimID}/bank-details.
func (h *Handler) HandleBankDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[BankDetailsRequest](w, r)
	if !ok {
		return
	}
	if err := h.service.SetBankDetails(r.Context(), id, req.Model()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmit handles POST /claims/{claimID}/submission.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	if err := h.service.SubmitClaim(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.log.Printf("claim %s submitted", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleAmendAward handles POST /claims/{claimID}/award-amendments.
func (h *Handler) HandleAmendAward(w http.ResponseWriter, r *http.Request) {
	id, ok := claimID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[AmendAwardRequest](w, r)
	if !ok {
		return
	}
	if err := h.service.AmendAward(r.Context(), id, req.AmountPence, req.AmendedBy); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.log.Printf("claim %s award amended by %s", id, req.AmendedBy)
	w.WriteHeader(http.StatusNoContent)
}
