package eligibility

import "claimflow/internal/answers"

// Predicate helpers shared across policy checkers. Each returns Unknown
// when the referenced answer is absent so partial claims evaluate to
// undetermined rather than erroring.

// BoolIs is true when attribute a holds want.
func BoolIs(a answers.Attribute, want bool) func(answers.Snapshot) Tri {
	return func(snap answers.Snapshot) Tri {
		v, ok := snap.Bool(a)
		if !ok {
			return Unknown
		}
		if v == want {
			return True
		}
		return False
	}
}

// EnumIs is true when attribute a holds want.
func EnumIs(a answers.Attribute, want string) func(answers.Snapshot) Tri {
	return func(snap answers.Snapshot) Tri {
		v, ok := snap.Enum(a)
		if !ok {
			return Unknown
		}
		if v == want {
			return True
		}
		return False
	}
}

// AmountIs is true when attribute a holds exactly want pence.
func AmountIs(a answers.Attribute, want int64) func(answers.Snapshot) Tri {
	return func(snap answers.Snapshot) Tri {
		v, ok := snap.Amount(a)
		if !ok {
			return Unknown
		}
		if v == want {
			return True
		}
		return False
	}
}

// All is the strong-Kleene conjunction: false dominates unknown, so a
// predicate like "supply teacher AND no term contract" is definitively
// false as soon as the claimant says they are not a supply teacher.
func All(checks ...func(answers.Snapshot) Tri) func(answers.Snapshot) Tri {
	return func(snap answers.Snapshot) Tri {
		result := True
		for _, check := range checks {
			switch check(snap) {
			case False:
				return False
			case Unknown:
				result = Unknown
			}
		}
		return result
	}
}

// Any is the strong-Kleene disjunction: true dominates unknown.
func Any(checks ...func(answers.Snapshot) Tri) func(answers.Snapshot) Tri {
	return func(snap answers.Snapshot) Tri {
		result := False
		for _, check := range checks {
			switch check(snap) {
			case True:
				return True
			case Unknown:
				result = Unknown
			}
		}
		return result
	}
}
