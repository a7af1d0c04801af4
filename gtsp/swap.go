// Package gtsp - pairwise swap neighborhood.
//
// For every pair of positions i < j the move exchanges tour[i] and tour[j].
// The candidate weight is recomputed in full; there is no incremental delta.
//
// Cardinality: m·(m-1)/2 moves for m clusters. Each move costs O(m).
package gtsp

import (
	"iter"

	"github.com/katalvlaran/clusterpath/search"
)

// Swap is the pairwise-exchange MoveNeighborhood.
type Swap[C Cost] struct{}

// SwapMove exchanges two positions of a tour.
type SwapMove[C Cost] struct {
	current Solution[C]
	next    Solution[C]
}

// ScoreIncrease implements search.Move.
func (m SwapMove[C]) ScoreIncrease() C { return m.current.weight - m.next.weight }

// IsImproving implements search.Move.
func (m SwapMove[C]) IsImproving() bool { return m.ScoreIncrease() > 0 }

// Solution implements search.Move.
func (m SwapMove[C]) Solution() Solution[C] { return m.next }

// Moves implements search.MoveNeighborhood.
func (Swap[C]) Moves(p *Problem[C], current Solution[C]) iter.Seq[search.Move[Solution[C], C]] {
	return func(yield func(search.Move[Solution[C], C]) bool) {
		var (
			m    = len(current.tour)
			i, j int
		)
		for i = 0; i < m; i++ {
			for j = i + 1; j < m; j++ {
				tour := append([]int(nil), current.tour...)
				tour[i], tour[j] = tour[j], tour[i]
				if !yield(SwapMove[C]{current: current, next: mustSolution(p, tour)}) {
					return
				}
			}
		}
	}
}
