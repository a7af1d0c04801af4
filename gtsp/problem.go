// SPDX-License-Identifier: MIT
// Package gtsp - problem instance.
//
// A Problem is immutable once built: vertex count, cluster partition, and a
// (possibly asymmetric) n×n cost matrix stored linearized as w[u*n+v] so that
// hot loops read one slice without indirection.
//
// Contracts:
//   - Every vertex 0..n-1 belongs to exactly one non-empty cluster.
//   - Dist(u, v) requires u != v; the diagonal is never consulted.
//   - Symmetric/Triangle are informational flags copied from the input.
//
// Concurrency: a *Problem is read-only after NewProblem and may be shared by any
// number of concurrent searches.
package gtsp

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Cost is the numeric type of arc costs and tour weights.
type Cost interface {
	constraints.Signed | constraints.Float
}

// Problem is a Generalized TSP instance.
type Problem[C Cost] struct {
	n         int
	w         []C
	clusters  [][]int
	clusterOf []int

	symmetric bool // declared
	triangle  bool // declared
	mirrored  bool // measured: w[u][v] == w[v][u] for all u != v
}

// ProblemOption sets informational flags on a Problem.
type ProblemOption func(*problemFlags)

type problemFlags struct {
	symmetric bool
	triangle  bool
}

// WithSymmetric records whether the input declares a symmetric matrix.
func WithSymmetric(v bool) ProblemOption {
	return func(f *problemFlags) { f.symmetric = v }
}

// WithTriangle records whether the input declares the triangle inequality.
func WithTriangle(v bool) ProblemOption {
	return func(f *problemFlags) { f.triangle = v }
}

// NewProblem validates and copies dist and clusters into a Problem.
//
// Errors: ErrNoClusters, ErrEmptyCluster, ErrNonSquare, ErrVertexOutOfRange,
// ErrDuplicateVertex, ErrUncoveredVertex.
//
// Complexity: O(n²).
func NewProblem[C Cost](dist [][]C, clusters [][]int, opts ...ProblemOption) (*Problem[C], error) {
	var flags problemFlags
	for _, opt := range opts {
		opt(&flags)
	}

	n := len(dist)
	if len(clusters) == 0 {
		return nil, ErrNoClusters
	}

	var (
		u, v int
		w    = make([]C, n*n)
	)
	for u = 0; u < n; u++ {
		if len(dist[u]) != n {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", u, len(dist[u]), n, ErrNonSquare)
		}
		copy(w[u*n:(u+1)*n], dist[u])
	}

	clusterOf := make([]int, n)
	for v = range clusterOf {
		clusterOf[v] = -1
	}
	own := make([][]int, len(clusters))
	for ci, c := range clusters {
		if len(c) == 0 {
			return nil, fmt.Errorf("cluster %d: %w", ci, ErrEmptyCluster)
		}
		for _, v = range c {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("cluster %d, vertex %d: %w", ci, v, ErrVertexOutOfRange)
			}
			if clusterOf[v] >= 0 {
				return nil, fmt.Errorf("vertex %d in clusters %d and %d: %w", v, clusterOf[v], ci, ErrDuplicateVertex)
			}
			clusterOf[v] = ci
		}
		own[ci] = append([]int(nil), c...)
	}
	for v = range clusterOf {
		if clusterOf[v] < 0 {
			return nil, fmt.Errorf("vertex %d: %w", v, ErrUncoveredVertex)
		}
	}

	mirrored := true
	for u = 0; u < n && mirrored; u++ {
		for v = u + 1; v < n; v++ {
			if w[u*n+v] != w[v*n+u] {
				mirrored = false
				break
			}
		}
	}

	return &Problem[C]{
		n:         n,
		w:         w,
		clusters:  own,
		clusterOf: clusterOf,
		symmetric: flags.symmetric,
		triangle:  flags.triangle,
		mirrored:  mirrored,
	}, nil
}

// Dist returns the cost of arc u→v. Precondition: u != v.
func (p *Problem[C]) Dist(u, v int) C { return p.w[u*p.n+v] }

// NumVertices returns n.
func (p *Problem[C]) NumVertices() int { return p.n }

// NumClusters returns the number of clusters (the tour length).
func (p *Problem[C]) NumClusters() int { return len(p.clusters) }

// Cluster returns the members of cluster i. The slice must not be modified.
func (p *Problem[C]) Cluster(i int) []int { return p.clusters[i] }

// ClusterOf returns the cluster index of vertex v.
func (p *Problem[C]) ClusterOf(v int) int { return p.clusterOf[v] }

// IsSymmetric reports the declared symmetry flag.
func (p *Problem[C]) IsSymmetric() bool { return p.symmetric }

// HasTriangleInequality reports the declared triangle-inequality flag.
func (p *Problem[C]) HasTriangleInequality() bool { return p.triangle }

// Score returns -weight: lighter tours score higher.
func (p *Problem[C]) Score(s Solution[C]) C { return -s.weight }

// InitialSolution picks one uniformly random vertex per cluster, in cluster order.
//
// Complexity: O(m) where m is the number of clusters.
func (p *Problem[C]) InitialSolution(rng *rand.Rand) Solution[C] {
	tour := make([]int, len(p.clusters))
	for i, c := range p.clusters {
		tour[i] = c[rng.Intn(len(c))]
	}

	return mustSolution(p, tour)
}

// NewSolution validates an externally supplied tour and computes its weight.
// The tour slice is copied.
//
// Errors: ErrInvalidTour.
func (p *Problem[C]) NewSolution(tour []int) (Solution[C], error) {
	own := append([]int(nil), tour...)
	if err := p.checkTour(own); err != nil {
		return Solution[C]{}, err
	}

	return Solution[C]{tour: own, weight: tourWeight(p, own)}, nil
}

// checkTour verifies that tour visits exactly one vertex of every cluster.
//
// Complexity: O(m).
func (p *Problem[C]) checkTour(tour []int) error {
	if len(tour) != len(p.clusters) {
		return fmt.Errorf("tour has %d vertices for %d clusters: %w", len(tour), len(p.clusters), ErrInvalidTour)
	}
	seen := make([]bool, len(p.clusters))
	for pos, v := range tour {
		if v < 0 || v >= p.n {
			return fmt.Errorf("position %d: vertex %d out of range: %w", pos, v, ErrInvalidTour)
		}
		c := p.clusterOf[v]
		if seen[c] {
			return fmt.Errorf("position %d: cluster %d visited twice: %w", pos, c, ErrInvalidTour)
		}
		seen[c] = true
	}

	return nil
}
