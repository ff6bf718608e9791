package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgerrors "claimflow/pkg/errors"
)

// AcademicYear is a September-to-August year pair such as "2022/2023".
// The zero value means "none", which several ITT-year enumerations use as
// an explicit "none of the above" option.
type AcademicYear struct {
	StartYear int
}

// AcademicYearNone is the explicit "no academic year" value.
var AcademicYearNone = AcademicYear{}

// NewAcademicYear builds the academic year starting in startYear.
func NewAcademicYear(startYear int) AcademicYear {
	return AcademicYear{StartYear: startYear}
}

// AcademicYearAt returns the academic year containing t. Years roll over
// on 1 September.
func AcademicYearAt(t time.Time) AcademicYear {
	start := t.Year()
	if t.Month() < time.September {
		start--
	}
	return AcademicYear{StartYear: start}
}

// ParseAcademicYear parses "2022/2023" format. The empty string and the
// literal "None" both parse to AcademicYearNone.
func ParseAcademicYear(s string) (AcademicYear, error) {
	if s == "" || s == "None" {
		return AcademicYearNone, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return AcademicYearNone, pkgerrors.Newf(pkgerrors.CodeValidationFailed, "academic year %q is not in YYYY/YYYY format", s)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return AcademicYearNone, pkgerrors.Newf(pkgerrors.CodeValidationFailed, "academic year %q has a non-numeric start year", s)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end != start+1 {
		return AcademicYearNone, pkgerrors.Newf(pkgerrors.CodeValidationFailed, "academic year %q must end the year after it starts", s)
	}
	return AcademicYear{StartYear: start}, nil
}

func (y AcademicYear) IsNone() bool { return y.StartYear == 0 }

func (y AcademicYear) String() string {
	if y.IsNone() {
		return "None"
	}
	return fmt.Sprintf("%d/%d", y.StartYear, y.StartYear+1)
}

// Next returns the following academic year.
func (y AcademicYear) Next() AcademicYear {
	return AcademicYear{StartYear: y.StartYear + 1}
}

// Before reports whether y starts before other.
func (y AcademicYear) Before(other AcademicYear) bool {
	return y.StartYear < other.StartYear
}

// Range enumerates the academic years from y up to and including last.
func (y AcademicYear) Range(last AcademicYear) []AcademicYear {
	var out []AcademicYear
	for cur := y; !last.Before(cur); cur = cur.Next() {
		out = append(out, cur)
	}
	return out
}
