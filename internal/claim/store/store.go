// Package store persists claims, their eligibility records and their
// append-only tasks and notes. Implementations: memory for tests and
// local runs, PostgreSQL for production.
package store

import (
	"context"

	"claimflow/internal/claim/models"
	"claimflow/pkg/domain"
)

// Store is the persistence seam for the claim aggregate.
//
// Update is the single-writer point: it must compare the caller's
// expected version against the stored one and fail with sentinel.ErrStale
// (wrapped) when they diverge, so duplicate form posts cannot both apply
// dependency nulling.
type Store interface {
	Create(ctx context.Context, claim *models.Claim, elig *models.EligibilityRecord) error
	Get(ctx context.Context, id domain.ClaimID) (*models.Claim, *models.EligibilityRecord, error)
	Update(ctx context.Context, claim *models.Claim, elig *models.EligibilityRecord, expectedVersion int64) error

	AppendTask(ctx context.Context, task *models.Task) error
	TasksFor(ctx context.Context, id domain.ClaimID) ([]models.Task, error)
	AppendNote(ctx context.Context, note *models.Note) error
	NotesFor(ctx context.Context, id domain.ClaimID) ([]models.Note, error)
}
