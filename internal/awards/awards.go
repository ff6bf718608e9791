// Package awards provides the per-school, per-academic-year award table
// consulted for policies whose payment amount is school-specific.
package awards

import (
	"context"

	"claimflow/pkg/domain"
)

// Award is one row of the award table.
type Award struct {
	SchoolID domain.SchoolID
	Year     domain.AcademicYear
	Amount   int64 // pence
}

// Lookup resolves award amounts. Absence of a matching row yields a zero
// amount, not an error.
type Lookup interface {
	// Amount returns the award for a school in an academic year.
	Amount(ctx context.Context, school domain.SchoolID, year domain.AcademicYear) (int64, error)
	// MaxAmount returns the largest award across all schools for an
	// academic year. Used to bound award amendments.
	MaxAmount(ctx context.Context, year domain.AcademicYear) (int64, error)
}
