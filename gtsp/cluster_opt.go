// SPDX-License-Identifier: MIT
// Package gtsp - cluster optimization (representative re-selection).
//
// The cyclic order of clusters implied by the current tour is kept fixed; the
// vertex visited in every cluster is chosen again to minimize the cycle weight.
//
// Algorithm (shortest cycle through a fixed cluster sequence):
//  1. order[k] = cluster of T[k]; start = position of the smallest cluster.
//  2. For every anchor vertex s of the start cluster run a forward DP around
//     the cycle: dist[k][b] = min over a of dist[k-1][a] + w(a,b), with
//     parent[b] = argmin, beginning from dist[start][s] = 0 and ending back in
//     the start cluster.
//  3. The cycle weight for anchor s is the DP value of s after the wrap;
//     following parent pointers from s rebuilds the tour.
//
// The best anchor yields the optimal tour for the fixed cluster order.
//
// Complexity: O(|C_start| · Σ_k |C_k|·|C_k+1|) time, O(n + max|C|) space per anchor.
package gtsp

import (
	"iter"
)

// ClusterOptimization is both an Improver (best anchor) and a Neighborhood
// (one candidate per anchor).
type ClusterOptimization[C Cost] struct{}

// Improve returns the optimal representative choice for current's cluster order.
// The result is never heavier than current.
func (ClusterOptimization[C]) Improve(p *Problem[C], current Solution[C]) Solution[C] {
	var (
		best  Solution[C]
		found bool
	)
	for s := range clusterCycles(p, current) {
		if !found || s.weight < best.weight {
			best, found = s, true
		}
	}
	if !found {
		return current
	}

	return best
}

// Neighbors implements search.Neighborhood.
func (ClusterOptimization[C]) Neighbors(p *Problem[C], current Solution[C]) iter.Seq[Solution[C]] {
	return clusterCycles(p, current)
}

// clusterCycles yields the DP-optimal cycle for each anchor of the start cluster.
// Single-cluster tours yield nothing (there is no arc to optimize).
func clusterCycles[C Cost](p *Problem[C], current Solution[C]) iter.Seq[Solution[C]] {
	return func(yield func(Solution[C]) bool) {
		m := len(current.tour)
		if m < 2 {
			return
		}

		order := make([]int, m)
		start := 0
		for k, v := range current.tour {
			order[k] = p.clusterOf[v]
			if len(p.clusters[order[k]]) < len(p.clusters[order[start]]) {
				start = k
			}
		}

		var (
			anchors = p.clusters[order[start]]
			parent  = make([]int, p.n)
			maxSize int
		)
		for _, c := range p.clusters {
			maxSize = max(maxSize, len(c))
		}
		var (
			cur, next         = make([]C, maxSize), make([]C, maxSize)
			curSet, nextSet   = make([]bool, maxSize), make([]bool, maxSize)
			k, ai, bi, anchor int
		)

		for anchor = range anchors {
			clear(curSet)
			cur[anchor], curSet[anchor] = 0, true

			for k = 0; k < m; k++ {
				from := p.clusters[order[(start+k)%m]]
				to := p.clusters[order[(start+k+1)%m]]
				clear(nextSet[:len(to)])

				for ai = range from {
					if !curSet[ai] {
						continue
					}
					for bi = range to {
						d := cur[ai] + p.Dist(from[ai], to[bi])
						if !nextSet[bi] || d < next[bi] {
							next[bi], nextSet[bi] = d, true
							parent[to[bi]] = from[ai]
						}
					}
				}
				cur, next = next, cur
				curSet, nextSet = nextSet, curSet
			}

			// Walk back from the anchor: parent^k(s) sits k clusters before s.
			tour := make([]int, m)
			v := anchors[anchor]
			for k = m - 1; k >= 0; k-- {
				tour[k] = v
				v = parent[v]
			}
			if !yield(mustSolution(p, tour)) {
				return
			}
		}
	}
}
