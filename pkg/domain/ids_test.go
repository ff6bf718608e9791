package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "claimflow/pkg/errors"
)

func TestParseClaimID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseClaimID("")
		require.Error(t, err)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidationFailed))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseClaimID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidationFailed))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseClaimID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidationFailed))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		want := uuid.New()
		id, err := ParseClaimID(want.String())
		require.NoError(t, err)
		assert.Equal(t, ClaimID(want), id)
	})

	t.Run("round-trips through String", func(t *testing.T) {
		id := NewClaimID()
		parsed, err := ParseClaimID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})
}

func TestParseSchoolID(t *testing.T) {
	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseSchoolID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidationFailed))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		want := uuid.New()
		id, err := ParseSchoolID(want.String())
		require.NoError(t, err)
		assert.Equal(t, SchoolID(want), id)
	})
}

func TestNewIDsAreDistinct(t *testing.T) {
	assert.False(t, NewClaimID().IsNil())
	assert.False(t, NewSchoolID().IsNil())
	assert.NotEqual(t, NewTaskID(), NewTaskID())
	assert.NotEqual(t, NewNoteID(), NewNoteID())
}
