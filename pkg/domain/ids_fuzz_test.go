package domain

import "testing"

// FuzzParseClaimID checks that parsing arbitrary input never panics and
// that any accepted value round-trips through its string form.
func FuzzParseClaimID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseClaimID(input)
		if err != nil {
			return
		}
		if id.IsNil() {
			t.Error("accepted the nil UUID")
		}
		roundTrip, err := ParseClaimID(id.String())
		if err != nil {
			t.Errorf("accepted value failed to round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed the ID value")
		}
	})
}
