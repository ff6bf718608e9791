// Package answers holds the journey-scoped claimant answer set. Every
// attribute has a fixed enumerated domain declared up front; assignment
// outside the domain fails at assignment time, never at save time.
package answers

import "fmt"

// Attribute names one answer field, e.g. "employed_as_supply_teacher".
type Attribute string

// Kind classifies an attribute's value domain.
type Kind int

const (
	// KindBool accepts true/false only.
	KindBool Kind = iota
	// KindEnum accepts one of a declared list of string values.
	KindEnum
	// KindRef accepts a non-empty reference identifier (UUID string).
	KindRef
	// KindAmount accepts a non-negative amount in pence.
	KindAmount
)

// Spec declares one attribute and its domain.
type Spec struct {
	Name Attribute
	Kind Kind
	// Enum lists the permitted values for KindEnum attributes.
	Enum []string
}

func (s Spec) allowsEnum(v string) bool {
	for _, e := range s.Enum {
		if e == v {
			return true
		}
	}
	return false
}

// Schema is the closed attribute set for one policy's eligibility record.
type Schema struct {
	specs map[Attribute]Spec
	order []Attribute
}

// NewSchema builds a schema from attribute specs. Duplicate names panic:
// schemas are package-level policy constants, so a duplicate is a
// programming error caught by the first test that touches the policy.
func NewSchema(specs ...Spec) *Schema {
	s := &Schema{specs: make(map[Attribute]Spec, len(specs))}
	for _, spec := range specs {
		if _, dup := s.specs[spec.Name]; dup {
			panic(fmt.Sprintf("answers: duplicate attribute %q", spec.Name))
		}
		s.specs[spec.Name] = spec
		s.order = append(s.order, spec.Name)
	}
	return s
}

// Spec looks up the declaration for an attribute.
func (s *Schema) Spec(a Attribute) (Spec, bool) {
	spec, ok := s.specs[a]
	return spec, ok
}

// Attributes lists the schema's attributes in declaration order.
func (s *Schema) Attributes() []Attribute {
	out := make([]Attribute, len(s.order))
	copy(out, s.order)
	return out
}
