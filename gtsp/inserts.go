// Package gtsp - cluster-aware insertion neighborhood.
//
// For every position i, every target index j, and every member v of the
// cluster of T[i], the move removes T[i] and inserts v at index j of the
// shortened tour. The move therefore changes both the visiting order and the
// representative of one cluster. Targets that put the vertex back into its own
// slot or next to it (j == i, j == i+1, i == j+1, all modulo m) are skipped.
//
// Delta (a=T[i−1], u=T[i], b=T[i+1]; q, r are the neighbors of index j in the
// shortened tour):
//
//	Δweight = w(a,b) − w(a,u) − w(u,b) + w(q,v) + w(v,r) − w(q,r)
//
// O(1) per move; materialization is O(m).
//
// Cardinality: O(m² · max cluster size). Instances with m < 4 have no moves.
package gtsp

import (
	"iter"

	"github.com/katalvlaran/clusterpath/search"
)

// Inserts is the relocate-and-reselect MoveNeighborhood.
type Inserts[C Cost] struct{}

// InsertMove removes position From and inserts Vertex at index To of the shortened tour.
type InsertMove[C Cost] struct {
	problem  *Problem[C]
	current  Solution[C]
	From     int
	To       int
	Vertex   int
	increase C
}

// ScoreIncrease implements search.Move.
func (m InsertMove[C]) ScoreIncrease() C { return m.increase }

// IsImproving implements search.Move.
func (m InsertMove[C]) IsImproving() bool { return m.increase > 0 }

// Solution implements search.Move.
func (m InsertMove[C]) Solution() Solution[C] {
	src := m.current.tour
	tour := make([]int, 0, len(src))
	tour = append(tour, src[:m.From]...)
	tour = append(tour, src[m.From+1:]...)
	tour = append(tour, 0)
	copy(tour[m.To+1:], tour[m.To:])
	tour[m.To] = m.Vertex

	return mustSolution(m.problem, tour)
}

// Moves implements search.MoveNeighborhood.
func (Inserts[C]) Moves(p *Problem[C], current Solution[C]) iter.Seq[search.Move[Solution[C], C]] {
	return func(yield func(search.Move[Solution[C], C]) bool) {
		var (
			t       = current.tour
			m       = len(t)
			i, j    int
			a, u, b int
			q, r    int
			removal C
		)
		// shortAt maps an index of the tour without position i back to t.
		shortAt := func(k int) int {
			if k < i {
				return t[k]
			}
			return t[k+1]
		}
		for i = 0; i < m; i++ {
			u = t[i]
			a = t[(i-1+m)%m]
			b = t[(i+1)%m]
			if m > 2 {
				removal = p.Dist(a, b) - p.Dist(a, u) - p.Dist(u, b)
			}
			members := p.clusters[p.clusterOf[u]]

			for j = 0; j < m; j++ {
				if i == j || i == (j+1)%m || j == (i+1)%m {
					continue
				}
				q = shortAt((j - 1 + m - 1) % (m - 1))
				r = shortAt(j % (m - 1))
				for _, v := range members {
					delta := removal + p.Dist(q, v) + p.Dist(v, r) - p.Dist(q, r)
					mv := InsertMove[C]{
						problem:  p,
						current:  current,
						From:     i,
						To:       j,
						Vertex:   v,
						increase: -delta,
					}
					if !yield(mv) {
						return
					}
				}
			}
		}
	}
}
