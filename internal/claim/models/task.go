package models

import (
	"time"

	"claimflow/pkg/domain"
)

// TaskName identifies a kind of check recorded against a claim.
type TaskName string

// TaskIdentityConfirmation is the automated identity cross-check.
const TaskIdentityConfirmation TaskName = "identity_confirmation"

// Match classifies how a claim's answers compared with an external
// record.
type Match string

const (
	// MatchNone: the external record was absent.
	MatchNone Match = "none"
	// MatchAny: a record was found but at least one field disagreed.
	MatchAny Match = "any"
	// MatchAll: every field agreed.
	MatchAll Match = "all"
)

// Task is a named check outcome. Append-only: created by a verifier or
// an administrator, never mutated.
type Task struct {
	ID      domain.TaskID
	ClaimID domain.ClaimID
	Name    TaskName
	Match   Match
	// Passed is nil while the outcome still needs a manual decision.
	Passed    *bool
	Manual    bool
	CreatedBy string
	CreatedAt time.Time
}

// Note is a free-text annotation on a claim. Append-only.
type Note struct {
	ID        domain.NoteID
	ClaimID   domain.ClaimID
	Body      string
	Important bool
	CreatedBy string
	CreatedAt time.Time
}
