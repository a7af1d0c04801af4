// Package search_test provides a tiny problem shared by the strategy tests:
// a 1-D landscape where a solution is an index and its score is read from a
// table. Neighbors of x are x-1 and x+1 (when in range).
package search_test

import (
	"iter"
	"math/rand"

	"github.com/katalvlaran/clusterpath/search"
)

// point is a position on the landscape.
type point int

func (a point) Equal(b point) bool { return a == b }

// landscape scores positions by table lookup.
type landscape struct {
	heights []int
}

var _ search.Problem[point, int] = (*landscape)(nil)

func (l *landscape) Score(x point) int { return l.heights[x] }

func (l *landscape) InitialSolution(rng *rand.Rand) point {
	return point(rng.Intn(len(l.heights)))
}

// twoPeaks has a local peak at 2 (height 5) and the global peak at 7 (height 9).
func twoPeaks() *landscape {
	return &landscape{heights: []int{0, 3, 5, 4, 1, 2, 6, 9, 7, 0}}
}

// stepMove moves by delta.
type stepMove struct {
	l        *landscape
	from, to point
}

func (m stepMove) ScoreIncrease() int { return m.l.heights[m.to] - m.l.heights[m.from] }
func (m stepMove) IsImproving() bool  { return m.ScoreIncrease() > 0 }
func (m stepMove) Solution() point    { return m.to }

// steps is the ±1 MoveNeighborhood.
type steps struct{}

func (steps) Moves(l *landscape, cur point) iter.Seq[search.Move[point, int]] {
	return func(yield func(search.Move[point, int]) bool) {
		for _, d := range []point{-1, 1} {
			to := cur + d
			if to < 0 || int(to) >= len(l.heights) {
				continue
			}
			if !yield(stepMove{l: l, from: cur, to: to}) {
				return
			}
		}
	}
}

// recordingNeighbors wraps a Neighborhood and records every expanded solution.
type recordingNeighbors struct {
	inner    search.Neighborhood[*landscape, point]
	expanded []point
}

func (r *recordingNeighbors) Neighbors(l *landscape, cur point) iter.Seq[point] {
	r.expanded = append(r.expanded, cur)
	return r.inner.Neighbors(l, cur)
}

func newLocal(term search.Termination, opts ...search.Option) *search.LocalSearch[*landscape, point, int] {
	return search.NewLocalSearch[*landscape, point, int](steps{}, term, opts...)
}

func newTabu(nb search.Neighborhood[*landscape, point], length int, term search.Termination) *search.TabuSearch[*landscape, point, int] {
	return search.NewTabuSearch[*landscape, point, int](nb, length, term)
}

// shift returns an Improver that moves by d when the target is in range.
func shift(d point) search.Improver[*landscape, point] {
	return search.ImproverFunc[*landscape, point](func(l *landscape, cur point) point {
		to := cur + d
		if to < 0 || int(to) >= len(l.heights) {
			return cur
		}
		return to
	})
}
