package verify

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"claimflow/internal/claim/models"
	claimstore "claimflow/internal/claim/store"
	"claimflow/internal/platform/metrics"
	"claimflow/internal/verify/notify"
	"claimflow/pkg/domain"
)

type IdentitySuite struct {
	suite.Suite

	claims   *claimstore.MemoryStore
	notifier *notify.MemoryNotifier
	verifier *Verifier
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentitySuite))
}

func (s *IdentitySuite) SetupTest() {
	s.claims = claimstore.NewMemory()
	s.notifier = notify.NewMemory()
	v, err := NewVerifier(s.claims, s.notifier, metrics.New(prometheus.NewRegistry()), log.New(io.Discard, "", 0))
	s.Require().NoError(err)
	s.verifier = v
}

func (s *IdentitySuite) newClaim() *models.Claim {
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
		Version:     1,
		SubmittedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Require().NoError(s.claims.Create(context.Background(), claim, &models.EligibilityRecord{
		ClaimID: claim.ID, Policy: claim.Policy, Answers: map[string]any{},
	}))
	return claim
}

func (s *IdentitySuite) matchingRecord() *TeacherRecord {
	return &TeacherRecord{
		TeacherReferenceNumber: "1234567",
		NationalInsuranceNo:    "QQ123456C",
		FirstName:              "JO",
		Surname:                "frost",
		DateOfBirth:            "1990-03-04",
	}
}

func (s *IdentitySuite) noteBodies(id domain.ClaimID) []string {
	notes, err := s.claims.NotesFor(context.Background(), id)
	s.Require().NoError(err)
	bodies := make([]string, len(notes))
	for i, n := range notes {
		bodies[i] = n.Body
	}
	return bodies
}

func (s *IdentitySuite) TestCompleteMatch() {
	ctx := context.Background()
	claim := s.newClaim()

	task, err := s.verifier.Perform(ctx, claim, s.matchingRecord())
	s.Require().NoError(err)
	s.Equal(models.MatchAll, task.Match)
	s.Require().NotNil(task.Passed)
	s.True(*task.Passed, "a complete match passes without manual review")
	s.Empty(s.noteBodies(claim.ID))
}

func (s *IdentitySuite) TestPartialMatch() {
	ctx := context.Background()
	claim := s.newClaim()

	record := s.matchingRecord()
	record.NationalInsuranceNo = "QQ999999C"
	record.DateOfBirth = "1990-04-03"

	task, err := s.verifier.Perform(ctx, claim, record)
	s.Require().NoError(err)
	s.Equal(models.MatchAny, task.Match)
	s.Nil(task.Passed, "a partial match awaits a manual decision")
	s.Equal([]string{
		"National Insurance number not matched",
		"Date of birth not matched",
	}, s.noteBodies(claim.ID))
}

func (s *IdentitySuite) TestNoFieldMatches() {
	ctx := context.Background()
	claim := s.newClaim()

	record := &TeacherRecord{
		TeacherReferenceNumber: "7654321",
		NationalInsuranceNo:    "QQ999999C",
		FirstName:              "Someone",
		Surname:                "Else",
		DateOfBirth:            "1980-01-01",
	}

	task, err := s.verifier.Perform(ctx, claim, record)
	s.Require().NoError(err)
	s.Equal(models.MatchAny, task.Match, "a record was found, so this is a partial match")
	s.Nil(task.Passed)
	s.Len(s.noteBodies(claim.ID), 4)
}

func (s *IdentitySuite) TestNationalInsuranceNumberCaseMismatch() {
	ctx := context.Background()
	claim := s.newClaim()

	record := s.matchingRecord()
	record.NationalInsuranceNo = "qq123456c"

	task, err := s.verifier.Perform(ctx, claim, record)
	s.Require().NoError(err)
	s.Equal(models.MatchAny, task.Match)
	s.Nil(task.Passed)
	s.Equal([]string{"National Insurance number not matched"}, s.noteBodies(claim.ID))
}

func (s *IdentitySuite) TestRecordAbsent() {
	ctx := context.Background()
	claim := s.newClaim()

	task, err := s.verifier.Perform(ctx, claim, nil)
	s.Require().NoError(err)
	s.Equal(models.MatchNone, task.Match)
	s.Nil(task.Passed)
	s.Equal([]string{"Not matched"}, s.noteBodies(claim.ID))

	queued := s.notifier.Queued()
	s.Require().Len(queued, 1)
	s.Equal(claim.ID, queued[0].ClaimID)
	s.Equal("identity_check_completed", queued[0].Event)
	s.Equal(string(models.MatchNone), queued[0].Match)
}

func (s *IdentitySuite) TestActiveAlertNote() {
	ctx := context.Background()
	claim := s.newClaim()

	record := s.matchingRecord()
	record.ActiveAlert = true

	task, err := s.verifier.Perform(ctx, claim, record)
	s.Require().NoError(err)
	s.Equal(models.MatchAny, task.Match, "an active alert never completes the match")
	s.Nil(task.Passed, "an alerted identity needs a manual decision")

	notes, err := s.claims.NotesFor(ctx, claim.ID)
	s.Require().NoError(err)
	s.Require().Len(notes, 1)
	s.Equal(activeAlertNote, notes[0].Body)
	s.True(notes[0].Important)
}

func (s *IdentitySuite) TestPerformIsIdempotent() {
	ctx := context.Background()
	claim := s.newClaim()

	first, err := s.verifier.Perform(ctx, claim, nil)
	s.Require().NoError(err)

	second, err := s.verifier.Perform(ctx, claim, s.matchingRecord())
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID, "a repeat check returns the existing task")
	s.Equal(models.MatchNone, second.Match)

	tasks, err := s.claims.TasksFor(ctx, claim.ID)
	s.Require().NoError(err)
	s.Len(tasks, 1)
	s.Len(s.notifier.Queued(), 1, "no second event queued")
	s.Equal([]string{"Not matched"}, s.noteBodies(claim.ID))
}
