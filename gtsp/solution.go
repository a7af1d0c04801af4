// Package gtsp - tours.
//
// A Solution is an immutable value: a cyclic tour holding one vertex per
// cluster, plus its cached weight (the sum of consecutive arcs and the closing
// arc last→first). Every constructor establishes weight == recomputed weight.
// Transformations copy the tour; two Solutions never share a mutable slice.
package gtsp

import (
	"fmt"
	"slices"
	"strings"
)

// Solution is a GTSP tour with its weight.
type Solution[C Cost] struct {
	tour   []int
	weight C
}

// mustSolution builds a Solution from a tour the caller owns. A tour that
// violates the one-vertex-per-cluster invariant is a programming error and panics.
func mustSolution[C Cost](p *Problem[C], tour []int) Solution[C] {
	if err := p.checkTour(tour); err != nil {
		panic(err)
	}

	return Solution[C]{tour: tour, weight: tourWeight(p, tour)}
}

// Weight returns the total cyclic cost.
func (s Solution[C]) Weight() C { return s.weight }

// Tour returns a copy of the vertex sequence.
func (s Solution[C]) Tour() []int { return slices.Clone(s.tour) }

// Len returns the number of visited vertices (== number of clusters).
func (s Solution[C]) Len() int { return len(s.tour) }

// At returns the vertex at position i.
func (s Solution[C]) At(i int) int { return s.tour[i] }

// Equal reports structural equality: same weight and same vertex sequence.
// Rotations are different solutions.
func (s Solution[C]) Equal(o Solution[C]) bool {
	return s.weight == o.weight && slices.Equal(s.tour, o.tour)
}

// String implements fmt.Stringer.
func (s Solution[C]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "weight=%v tour=[", s.weight)
	for i, v := range s.tour {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(']')

	return b.String()
}

// arcCost is the cost from position i to position j, both taken modulo the tour length.
func (s Solution[C]) arcCost(p *Problem[C], i, j int) C {
	m := len(s.tour)

	return p.Dist(s.tour[i%m], s.tour[j%m])
}

// forwardCost sums arcs between consecutive entries of positions.
//
// Complexity: O(len(positions)).
func (s Solution[C]) forwardCost(p *Problem[C], positions ...int) C {
	var (
		sum C
		k   int
	)
	for k = 0; k+1 < len(positions); k++ {
		sum += s.arcCost(p, positions[k], positions[k+1])
	}

	return sum
}

// tourWeight sums the cycle tour[0]→…→tour[m-1]→tour[0].
// A single-vertex tour has weight zero (no self-arc is read).
//
// Complexity: O(m).
func tourWeight[C Cost](p *Problem[C], tour []int) C {
	m := len(tour)
	if m < 2 {
		return 0
	}

	var (
		sum C
		i   int
	)
	for i = 0; i < m-1; i++ {
		sum += p.Dist(tour[i], tour[i+1])
	}

	return sum + p.Dist(tour[m-1], tour[0])
}

// Validate re-checks the cluster invariant and the cached weight against p.
// Intended for tests and for tours that crossed a process boundary.
//
// Errors: ErrInvalidTour, ErrWeightMismatch.
func (s Solution[C]) Validate(p *Problem[C]) error {
	if err := p.checkTour(s.tour); err != nil {
		return err
	}
	if w := tourWeight(p, s.tour); w != s.weight {
		return fmt.Errorf("cached %v, recomputed %v: %w", s.weight, w, ErrWeightMismatch)
	}

	return nil
}
