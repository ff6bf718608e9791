package handler_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"claimflow/internal/claim/models"
	claimstore "claimflow/internal/claim/store"
	"claimflow/internal/eligibility"
	"claimflow/internal/platform/metrics"
	"claimflow/internal/verify"
	"claimflow/internal/verify/handler"
	"claimflow/internal/verify/notify"
	"claimflow/pkg/domain"
	pkgerrors "claimflow/pkg/errors"
	"claimflow/pkg/sentinel"
	"claimflow/pkg/testutil"
)

// getterAdapter exposes the store's Get under the handler's ClaimGetter
// shape, standing in for the claim service.
type getterAdapter struct {
	store *claimstore.MemoryStore
}

func (g getterAdapter) Claim(ctx context.Context, id domain.ClaimID) (*models.Claim, *models.EligibilityRecord, error) {
	claim, elig, err := g.store.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil, pkgerrors.Wrap(err, pkgerrors.CodeNotFound, "claim not found")
	}
	return claim, elig, err
}

type HandlerSuite struct {
	suite.Suite
	ctx    context.Context
	store  *claimstore.MemoryStore
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = claimstore.NewMemory()
	logger := log.New(io.Discard, "", 0)

	verifier, err := verify.NewVerifier(s.store, notify.NewMemory(), metrics.New(prometheus.NewRegistry()), logger)
	s.Require().NoError(err)

	s.router = chi.NewRouter()
	handler.New(getterAdapter{store: s.store}, verifier, logger).Register(s.router)
}

func (s *HandlerSuite) newClaim(submitted bool) *models.Claim {
	now := time.Now()
	claim := &models.Claim{
		ID:     domain.NewClaimID(),
		Policy: domain.PolicyEarlyCareer,
		Personal: models.PersonalDetails{
			FirstName:              "Jo",
			Surname:                "Frost",
			DateOfBirth:            "1990-03-04",
			NationalInsuranceNo:    "QQ123456C",
			TeacherReferenceNumber: "1234567",
			Email:                  "jo.frost@example.com",
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if submitted {
		claim.SubmittedAt = &now
	}
	elig := &models.EligibilityRecord{
		ClaimID: claim.ID,
		Policy:  claim.Policy,
		Answers: map[string]any{},
		Status:  eligibility.StatusEligible,
	}
	s.Require().NoError(s.store.Create(s.ctx, claim, elig))
	return claim
}

func (s *HandlerSuite) checkPath(claim *models.Claim) string {
	return "/claims/" + claim.ID.String() + "/checks/identity-confirmation"
}

func (s *HandlerSuite) TestIdentityCheck() {
	s.Run("reports a complete match", func() {
		claim := s.newClaim(true)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.checkPath(claim), handler.IdentityCheckRequest{
			Record: &handler.RecordRequest{
				TeacherReferenceNumber: "1234567",
				NationalInsuranceNo:    "QQ123456C",
				FirstName:              "JO",
				Surname:                "frost",
				DateOfBirth:            "1990-03-04",
			},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[handler.TaskResponse](s.T(), rr)
		s.Equal("identity_confirmation", resp.Name)
		s.Equal("all", resp.Match)
		s.Require().NotNil(resp.Passed)
		s.True(*resp.Passed)
	})

	s.Run("reports an absent record as no match", func() {
		claim := s.newClaim(true)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.checkPath(claim), handler.IdentityCheckRequest{})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[handler.TaskResponse](s.T(), rr)
		s.Equal("none", resp.Match)
		s.Nil(resp.Passed)
	})

	s.Run("leaves a partial match for manual review", func() {
		claim := s.newClaim(true)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, s.checkPath(claim), handler.IdentityCheckRequest{
			Record: &handler.RecordRequest{
				TeacherReferenceNumber: "1234567",
				NationalInsuranceNo:    "ZZ999999Z",
				FirstName:              "Jo",
				Surname:                "Frost",
				DateOfBirth:            "1990-03-04",
			},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[handler.TaskResponse](s.T(), rr)
		s.Equal("any", resp.Match)
		s.Nil(resp.Passed)
	})

	s.Run("refuses checks on unsubmitted claims", func() {
		claim := s.newClaim(false)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, s.checkPath(claim), handler.IdentityCheckRequest{}))

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		testutil.AssertErrorCode(s.T(), rr, "validation_failed")
	})

	s.Run("rejects a malformed claim ID", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/claims/nope/checks/identity-confirmation", handler.IdentityCheckRequest{}))

		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
		testutil.AssertErrorCode(s.T(), rr, "not_found")
	})

	s.Run("reports an unknown claim as not found", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/claims/"+domain.NewClaimID().String()+"/checks/identity-confirmation", handler.IdentityCheckRequest{}))

		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})
}
