// Package dependency computes which dependent answers must be nulled when
// an upstream answer changes. Graphs are static per policy and validated
// once at startup; resolution at submission time is a pure closure.
package dependency

import (
	"fmt"
	"sort"
	"strings"

	"claimflow/internal/answers"
)

// Graph maps an attribute to the attributes whose answers become stale
// when it changes.
type Graph map[answers.Attribute][]answers.Attribute

// CyclicError reports that an attribute can reach itself through the
// graph. Raised at configuration load, never during a journey.
type CyclicError struct {
	Cycle []answers.Attribute
}

func (e *CyclicError) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, a := range e.Cycle {
		parts[i] = string(a)
	}
	return fmt.Sprintf("dependency: cyclic graph: %s", strings.Join(parts, " -> "))
}

// Validate rejects graphs in which any attribute depends on itself,
// directly or transitively. Policies call this from their constructors so
// a bad graph prevents the journey from starting.
func Validate(g Graph) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[answers.Attribute]int)

	var stack []answers.Attribute
	var walk func(a answers.Attribute) *CyclicError
	walk = func(a answers.Attribute) *CyclicError {
		state[a] = visiting
		stack = append(stack, a)
		for _, dep := range g[a] {
			switch state[dep] {
			case visiting:
				// Trim the stack to the cycle entry point for the report.
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				cycle := append(append([]answers.Attribute{}, stack[start:]...), dep)
				return &CyclicError{Cycle: cycle}
			case unvisited:
				if err := walk(dep); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[a] = done
		return nil
	}

	roots := make([]answers.Attribute, 0, len(g))
	for a := range g {
		roots = append(roots, a)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	for _, a := range roots {
		if state[a] == unvisited {
			if err := walk(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// Closure returns the transitive set of attributes to null given the
// attributes that changed. The changed attributes themselves are not in
// the result unless something else depends on them.
func Closure(changed []answers.Attribute, g Graph) map[answers.Attribute]struct{} {
	out := make(map[answers.Attribute]struct{})
	frontier := append([]answers.Attribute{}, changed...)
	for len(frontier) > 0 {
		a := frontier[0]
		frontier = frontier[1:]
		for _, dep := range g[a] {
			if _, seen := out[dep]; seen {
				continue
			}
			out[dep] = struct{}{}
			frontier = append(frontier, dep)
		}
	}
	return out
}

// Suppress returns a copy of g with the outgoing edges of the listed
// attributes removed. Used when qualification data came from a trusted
// external source and must not be erased by later answer changes. The
// suppression list is explicit policy configuration, never inferred.
func Suppress(g Graph, attrs ...answers.Attribute) Graph {
	out := make(Graph, len(g))
	for a, deps := range g {
		out[a] = deps
	}
	for _, a := range attrs {
		delete(out, a)
	}
	return out
}
