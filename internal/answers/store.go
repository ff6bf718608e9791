package answers

import "fmt"

// DomainError reports an attempted assignment outside an attribute's
// declared domain. Nothing is persisted when it is returned.
type DomainError struct {
	Attribute Attribute
	Value     any
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("answers: value %v is outside the domain of attribute %q", e.Value, e.Attribute)
}

type value struct {
	kind   Kind
	b      bool
	s      string
	amount int64
}

// Store holds the mutable answer set for one claim plus a dirty-set of
// attributes changed since the last Commit. It is not safe for concurrent
// use; the claim service serializes writers per claim.
type Store struct {
	schema *Schema
	values map[Attribute]value
	dirty  map[Attribute]struct{}
}

// NewStore builds an empty store over a policy schema.
func NewStore(schema *Schema) *Store {
	return &Store{
		schema: schema,
		values: make(map[Attribute]value),
		dirty:  make(map[Attribute]struct{}),
	}
}

// Set assigns v to attribute a, reporting whether the stored value
// actually changed. Values outside the attribute's domain are rejected
// with a *DomainError and leave the store untouched.
func (st *Store) Set(a Attribute, v any) (bool, error) {
	spec, ok := st.schema.Spec(a)
	if !ok {
		return false, &DomainError{Attribute: a, Value: v}
	}

	var next value
	switch spec.Kind {
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return false, &DomainError{Attribute: a, Value: v}
		}
		next = value{kind: KindBool, b: b}
	case KindEnum:
		s, ok := v.(string)
		if !ok || !spec.allowsEnum(s) {
			return false, &DomainError{Attribute: a, Value: v}
		}
		next = value{kind: KindEnum, s: s}
	case KindRef:
		s, ok := v.(string)
		if !ok || s == "" {
			return false, &DomainError{Attribute: a, Value: v}
		}
		next = value{kind: KindRef, s: s}
	case KindAmount:
		n, ok := v.(int64)
		if !ok || n < 0 {
			return false, &DomainError{Attribute: a, Value: v}
		}
		next = value{kind: KindAmount, amount: n}
	default:
		return false, &DomainError{Attribute: a, Value: v}
	}

	prev, had := st.values[a]
	if had && prev == next {
		return false, nil
	}
	st.values[a] = next
	st.dirty[a] = struct{}{}
	return true, nil
}

// Clear nulls attribute a, reporting whether a value was present.
// Clearing marks the attribute dirty so dependency nulling is committed
// together with the change that triggered it.
func (st *Store) Clear(a Attribute) bool {
	if _, had := st.values[a]; !had {
		return false
	}
	delete(st.values, a)
	st.dirty[a] = struct{}{}
	return true
}

// Changed returns the attributes modified since the last Commit, in
// schema declaration order.
func (st *Store) Changed() []Attribute {
	var out []Attribute
	for _, a := range st.schema.Attributes() {
		if _, ok := st.dirty[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Commit clears the dirty-set. Call only after dependency resolution and
// persistence have both succeeded; skipping it preserves at-least-once
// recomputation when persistence fails.
func (st *Store) Commit() {
	st.dirty = make(map[Attribute]struct{})
}

// Snapshot returns an immutable view of the current answers. Eligibility
// evaluation and sequence computation read snapshots only, so re-entrant
// reads during a submission see one consistent state.
func (st *Store) Snapshot() Snapshot {
	values := make(map[Attribute]value, len(st.values))
	for k, v := range st.values {
		values[k] = v
	}
	return Snapshot{values: values}
}

// Raw exports the answer set for persistence. Booleans, enum/ref strings
// and amounts keep their Go types; the claim store JSON-encodes them.
func (st *Store) Raw() map[string]any {
	out := make(map[string]any, len(st.values))
	for a, v := range st.values {
		switch v.kind {
		case KindBool:
			out[string(a)] = v.b
		case KindAmount:
			out[string(a)] = v.amount
		default:
			out[string(a)] = v.s
		}
	}
	return out
}

// LoadRaw restores answers previously exported with Raw. JSON round-trips
// deliver numbers as float64, so both integer widths are accepted. Loaded
// values do not mark the store dirty. Unknown attributes and out-of-domain
// values fail so schema drift is caught at read time, not deep in a rule.
func (st *Store) LoadRaw(raw map[string]any) error {
	for name, v := range raw {
		a := Attribute(name)
		if f, ok := v.(float64); ok {
			v = int64(f)
		}
		if _, err := st.Set(a, v); err != nil {
			return err
		}
	}
	st.Commit()
	return nil
}

// Snapshot is a point-in-time, read-only copy of an answer set.
type Snapshot struct {
	values map[Attribute]value
}

// Present reports whether the attribute has any value.
func (s Snapshot) Present(a Attribute) bool {
	_, ok := s.values[a]
	return ok
}

// Bool returns a boolean answer and whether it is present.
func (s Snapshot) Bool(a Attribute) (bool, bool) {
	v, ok := s.values[a]
	if !ok || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Enum returns an enumerated answer and whether it is present.
func (s Snapshot) Enum(a Attribute) (string, bool) {
	v, ok := s.values[a]
	if !ok || v.kind != KindEnum {
		return "", false
	}
	return v.s, true
}

// Ref returns a reference answer and whether it is present.
func (s Snapshot) Ref(a Attribute) (string, bool) {
	v, ok := s.values[a]
	if !ok || v.kind != KindRef {
		return "", false
	}
	return v.s, true
}

// Amount returns an amount answer in pence and whether it is present.
func (s Snapshot) Amount(a Attribute) (int64, bool) {
	v, ok := s.values[a]
	if !ok || v.kind != KindAmount {
		return 0, false
	}
	return v.amount, true
}
