// Package gtsp - 2-opt neighborhood (segment reversal).
//
// For positions i < h with h ≥ i+2 the move reverses the segment T[i+1..h],
// replacing arcs (T[i]→T[i+1]) and (T[h]→T[h+1]) with (T[i]→T[h]) and
// (T[i+1]→T[h+1]); positions wrap modulo m. The reversal (i=0, h=m-1) only
// re-creates the closing arc and is skipped.
//
// Delta:
//   - Mirrored matrix (w[u][v]==w[v][u], measured at construction):
//     Δ = w(a,b) + w(c,d) − w(a,c) − w(b,d), with a=T[i], b=T[i+1], c=T[h], d=T[h+1].
//     O(1) per move.
//   - Otherwise every arc inside the segment changes direction, so the removed
//     path T[i]→…→T[h+1] and the added path T[i]→T[h]→…→T[i+1]→T[h+1] are
//     summed in full. O(h−i) per move.
//
// Materialization copies and reverses the tour: O(m).
package gtsp

import (
	"iter"
	"slices"

	"github.com/katalvlaran/clusterpath/search"
)

// TwoOpt is the segment-reversal MoveNeighborhood.
type TwoOpt[C Cost] struct{}

// TwoOptMove reverses positions i+1..h of a tour.
type TwoOptMove[C Cost] struct {
	problem  *Problem[C]
	current  Solution[C]
	i, h     int
	increase C
}

// Bounds returns (i, h): the segment i+1..h is reversed.
func (m TwoOptMove[C]) Bounds() (int, int) { return m.i, m.h }

// ScoreIncrease implements search.Move.
func (m TwoOptMove[C]) ScoreIncrease() C { return m.increase }

// IsImproving implements search.Move.
func (m TwoOptMove[C]) IsImproving() bool { return m.increase > 0 }

// Solution implements search.Move.
func (m TwoOptMove[C]) Solution() Solution[C] {
	tour := append([]int(nil), m.current.tour...)
	slices.Reverse(tour[m.i+1 : m.h+1])

	return mustSolution(m.problem, tour)
}

// Moves implements search.MoveNeighborhood.
func (TwoOpt[C]) Moves(p *Problem[C], current Solution[C]) iter.Seq[search.Move[Solution[C], C]] {
	return func(yield func(search.Move[Solution[C], C]) bool) {
		var (
			m    = len(current.tour)
			i, h int
		)
		for i = 0; i+2 < m; i++ {
			for h = i + 2; h < m; h++ {
				if i == 0 && h == m-1 {
					continue
				}
				mv := TwoOptMove[C]{
					problem:  p,
					current:  current,
					i:        i,
					h:        h,
					increase: twoOptIncrease(p, current, i, h),
				}
				if !yield(mv) {
					return
				}
			}
		}
	}
}

// twoOptIncrease returns weight(current) − weight(reversed) for the move (i, h).
func twoOptIncrease[C Cost](p *Problem[C], s Solution[C], i, h int) C {
	if p.mirrored {
		removed := s.arcCost(p, i, i+1) + s.arcCost(p, h, h+1)
		added := s.arcCost(p, i, h) + s.arcCost(p, i+1, h+1)

		return removed - added
	}

	var (
		removed, added C
		k              int
	)
	for k = i; k <= h; k++ {
		removed += s.arcCost(p, k, k+1)
	}
	added = s.arcCost(p, i, h)
	for k = h; k > i+1; k-- {
		added += s.arcCost(p, k, k-1)
	}
	added += s.arcCost(p, i+1, h+1)

	return removed - added
}
