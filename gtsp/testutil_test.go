// Package gtsp_test provides instance builders and brute-force oracles shared
// across the *_test.go files of this package.
package gtsp_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/search"
)

const (
	// seedDet is the default seed of randomized tests.
	seedDet = int64(7)

	// epsFloat absorbs summation-order noise in float64 comparisons.
	epsFloat = 1e-9
)

// randomInstance builds an n-vertex, m-cluster instance with costs in [1, 100].
// Every cluster receives at least one vertex. With symmetric=false the matrix
// is generated independently per direction.
func randomInstance[C gtsp.Cost](t testing.TB, rng *rand.Rand, n, m int, symmetric bool) *gtsp.Problem[C] {
	t.Helper()

	dist := make([][]C, n)
	for u := range dist {
		dist[u] = make([]C, n)
	}
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v || (symmetric && v < u) {
				continue
			}
			w := C(rng.Intn(100) + 1)
			if _, isFloat := any(w).(float64); isFloat {
				w += C(rng.Float64())
			}
			dist[u][v] = w
			if symmetric {
				dist[v][u] = w
			}
		}
	}

	perm := rng.Perm(n)
	clusters := make([][]int, m)
	for k, v := range perm {
		c := k
		if k >= m {
			c = rng.Intn(m)
		}
		clusters[c] = append(clusters[c], v)
	}

	p, err := gtsp.NewProblem(dist, clusters, gtsp.WithSymmetric(symmetric))
	require.NoError(t, err)

	return p
}

// recomputeWeight sums the tour arcs independently of the package internals.
func recomputeWeight[C gtsp.Cost](p *gtsp.Problem[C], tour []int) C {
	var sum C
	if len(tour) < 2 {
		return 0
	}
	for i := range tour {
		sum += p.Dist(tour[i], tour[(i+1)%len(tour)])
	}

	return sum
}

// requireConsistent checks the one-vertex-per-cluster and weight invariants.
func requireConsistent[C gtsp.Cost](t *testing.T, p *gtsp.Problem[C], s gtsp.Solution[C]) {
	t.Helper()

	require.NoError(t, s.Validate(p))
	require.Equal(t, p.NumClusters(), s.Len())
	seen := make(map[int]bool, p.NumClusters())
	for _, v := range s.Tour() {
		c := p.ClusterOf(v)
		require.False(t, seen[c], "cluster %d visited twice in %v", c, s)
		seen[c] = true
	}
	require.Len(t, seen, p.NumClusters())
}

// bestFixedOrder enumerates every representative choice for the cluster order
// of s and returns the minimum cycle weight.
func bestFixedOrder[C gtsp.Cost](p *gtsp.Problem[C], s gtsp.Solution[C]) C {
	var (
		order = make([]int, s.Len())
		tour  = make([]int, s.Len())
		best  C
		found bool
	)
	for k := range order {
		order[k] = p.ClusterOf(s.At(k))
	}

	var rec func(k int)
	rec = func(k int) {
		if k == len(order) {
			w := recomputeWeight(p, tour)
			if !found || w < best {
				best, found = w, true
			}
			return
		}
		for _, v := range p.Cluster(order[k]) {
			tour[k] = v
			rec(k + 1)
		}
	}
	rec(0)

	return best
}

// clusterSequence returns the cluster visited at each tour position.
func clusterSequence[C gtsp.Cost](p *gtsp.Problem[C], s gtsp.Solution[C]) []int {
	seq := make([]int, s.Len())
	for k := range seq {
		seq[k] = p.ClusterOf(s.At(k))
	}

	return seq
}

// sameCyclicOrder reports whether b is a rotation of a.
func sameCyclicOrder(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	for shift := range b {
		ok := true
		for k := range a {
			if a[k] != b[(k+shift)%len(b)] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}

	return false
}

// squareInstance is four singleton clusters on the unit square (Manhattan
// costs): the boundary tour weighs 4, a crossing tour weighs 6.
func squareInstance(t *testing.T) *gtsp.Problem[int64] {
	t.Helper()

	p, err := gtsp.NewProblem([][]int64{
		{0, 1, 2, 1},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{1, 2, 1, 0},
	}, [][]int{{0}, {1}, {2}, {3}}, gtsp.WithSymmetric(true), gtsp.WithTriangle(true))
	require.NoError(t, err)

	return p
}

// countMoves drains a MoveSource.
func countMoves[C gtsp.Cost](src gtsp.MoveSource[C], p *gtsp.Problem[C], s gtsp.Solution[C]) int {
	var n int
	for range src.Moves(p, s) {
		n++
	}

	return n
}

var _ search.Problem[gtsp.Solution[int64], int64] = (*gtsp.Problem[int64])(nil)
