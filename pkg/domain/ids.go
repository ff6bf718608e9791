// Package domain holds shared identifier and value types used across
// bounded contexts. Typed UUIDs make cross-context mixups a compile error.
package domain

import (
	"github.com/google/uuid"

	pkgerrors "claimflow/pkg/errors"
)

// ClaimID identifies a claim aggregate.
type ClaimID uuid.UUID

// SchoolID identifies a school reference record.
type SchoolID uuid.UUID

// TaskID identifies an automated or manual check outcome on a claim.
type TaskID uuid.UUID

// NoteID identifies a free-text annotation on a claim.
type NoteID uuid.UUID

func (id ClaimID) String() string  { return uuid.UUID(id).String() }
func (id SchoolID) String() string { return uuid.UUID(id).String() }
func (id TaskID) String() string   { return uuid.UUID(id).String() }
func (id NoteID) String() string   { return uuid.UUID(id).String() }

func (id ClaimID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id SchoolID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets ClaimID cross JSON boundaries as its string form.
func (id ClaimID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *ClaimID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*id = ClaimID(u)
	return nil
}

// NewClaimID mints a fresh claim identifier.
func NewClaimID() ClaimID { return ClaimID(uuid.New()) }

// NewSchoolID mints a fresh school identifier.
func NewSchoolID() SchoolID { return SchoolID(uuid.New()) }

// NewTaskID mints a fresh task identifier.
func NewTaskID() TaskID { return TaskID(uuid.New()) }

// NewNoteID mints a fresh note identifier.
func NewNoteID() NoteID { return NoteID(uuid.New()) }

// ParseClaimID constructs a ClaimID from external input. Empty, malformed
// and nil UUIDs are all rejected so handlers never pass a zero ID inward.
func ParseClaimID(s string) (ClaimID, error) {
	u, err := parseUUID(s, "claim id")
	return ClaimID(u), err
}

// ParseSchoolID constructs a SchoolID from external input.
func ParseSchoolID(s string) (SchoolID, error) {
	u, err := parseUUID(s, "school id")
	return SchoolID(u), err
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, pkgerrors.Newf(pkgerrors.CodeValidationFailed, "%s cannot be empty", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, pkgerrors.Newf(pkgerrors.CodeValidationFailed, "%s is not a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, pkgerrors.Newf(pkgerrors.CodeValidationFailed, "%s cannot be the nil UUID", what)
	}
	return u, nil
}
