package dependency

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"claimflow/internal/answers"
)

const (
	a answers.Attribute = "a"
	b answers.Attribute = "b"
	c answers.Attribute = "c"
	d answers.Attribute = "d"
)

type ResolverSuite struct {
	suite.Suite
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) TestValidate() {
	s.Run("accepts an acyclic graph", func() {
		s.NoError(Validate(Graph{a: {b, c}, b: {d}}))
	})

	s.Run("accepts a diamond", func() {
		s.NoError(Validate(Graph{a: {b, c}, b: {d}, c: {d}}))
	})

	s.Run("rejects a direct cycle", func() {
		err := Validate(Graph{a: {b}, b: {a}})
		var cyclic *CyclicError
		s.Require().ErrorAs(err, &cyclic)
		s.Equal([]answers.Attribute{a, b, a}, cyclic.Cycle)
	})

	s.Run("rejects a self-loop", func() {
		err := Validate(Graph{a: {a}})
		var cyclic *CyclicError
		s.Require().ErrorAs(err, &cyclic)
	})

	s.Run("rejects a transitive cycle", func() {
		err := Validate(Graph{a: {b}, b: {c}, c: {a}})
		var cyclic *CyclicError
		s.Require().ErrorAs(err, &cyclic)
	})
}

func (s *ResolverSuite) TestClosure() {
	g := Graph{a: {b, c}, b: {d}}

	s.Run("collects direct and transitive dependents", func() {
		got := Closure([]answers.Attribute{a}, g)
		s.Equal(map[answers.Attribute]struct{}{
			b: {}, c: {}, d: {},
		}, got)
	})

	s.Run("does not include the changed attribute itself", func() {
		got := Closure([]answers.Attribute{b}, g)
		s.NotContains(got, b)
		s.Contains(got, d)
	})

	s.Run("a leaf change nulls nothing", func() {
		s.Empty(Closure([]answers.Attribute{d}, g))
	})

	s.Run("multiple changes merge without duplicates", func() {
		got := Closure([]answers.Attribute{a, b}, g)
		s.Len(got, 3)
	})
}

func (s *ResolverSuite) TestSuppress() {
	g := Graph{a: {b}, b: {c}}

	s.Run("drops the outgoing edges of suppressed attributes", func() {
		got := Closure([]answers.Attribute{a}, Suppress(g, a))
		s.Empty(got)
	})

	s.Run("keeps other edges intact", func() {
		got := Closure([]answers.Attribute{b}, Suppress(g, a))
		s.Contains(got, c)
	})

	s.Run("does not mutate the original graph", func() {
		_ = Suppress(g, a, b)
		s.Len(g[a], 1)
		s.Contains(Closure([]answers.Attribute{a}, g), b)
	})
}
