package journey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"claimflow/internal/awards"
	"claimflow/internal/eligibility"
	"claimflow/internal/eligibility/earlycareer"
	"claimflow/internal/eligibility/levellingup"
	"claimflow/internal/eligibility/studentloans"
	"claimflow/pkg/domain"
)

// TestNewRegistry proves every policy's page table builds and references
// only attributes its checker's schema knows about.
func TestNewRegistry(t *testing.T) {
	checkers, err := eligibility.NewRegistry(
		studentloans.New(),
		earlycareer.New(),
		levellingup.New(awards.NewMemory(), domain.AcademicYearAt(time.Now())),
	)
	require.NoError(t, err)

	registry, err := NewRegistry(checkers)
	require.NoError(t, err)

	for _, policy := range domain.Policies() {
		seq, ok := registry.Sequence(policy)
		require.True(t, ok, "no sequence for %s", policy)

		pages := seq.Pages()
		require.NotEmpty(t, pages)
		require.Equal(t, SlugCheckYourAnswers, pages[len(pages)-1].Slug)
	}
}
