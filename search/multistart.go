// Package search - restarts.
//
// RandomStart turns an Improver into a MetaHeuristic by improving a random
// initial solution. Multistart repeats a MetaHeuristic built fresh by a factory
// and keeps the best result. Termination is polled between runs only; the first
// run always completes.
package search

import "math/rand"

// RandomStart runs an Improver from Problem.InitialSolution.
type RandomStart[P Problem[S, V], S any, V Score] struct {
	improver Improver[P, S]
}

// NewRandomStart wraps imp.
func NewRandomStart[P Problem[S, V], S any, V Score](imp Improver[P, S]) *RandomStart[P, S, V] {
	return &RandomStart[P, S, V]{improver: imp}
}

// Run improves p.InitialSolution(rng).
func (r *RandomStart[P, S, V]) Run(p P, rng *rand.Rand) S {
	return r.improver.Improve(p, p.InitialSolution(rng))
}

// Multistart keeps the best of repeated runs.
type Multistart[P Problem[S, V], S any, V Score] struct {
	factory func() MetaHeuristic[P, S]
	term    Termination
	settings
}

// NewMultistart returns a Multistart bounded by term. factory is called once
// per run so that each run owns fresh strategy state (including its own
// termination budget).
//
// Under Iterations(n) exactly max(n, 1) runs are performed.
func NewMultistart[P Problem[S, V], S any, V Score](
	term Termination,
	factory func() MetaHeuristic[P, S],
	opts ...Option,
) *Multistart[P, S, V] {
	return &Multistart[P, S, V]{
		factory:  factory,
		term:     term,
		settings: newSettings("multistart", opts),
	}
}

// Run performs the restarts and returns the best solution seen.
func (m *Multistart[P, S, V]) Run(p P, rng *rand.Rand) S {
	var (
		best      = m.factory().Run(p, rng)
		bestScore = p.Score(best)
		runs      = 1
	)
	m.term.Iteration()
	m.emit(runs, float64(bestScore), true)

	for !m.term.ShouldTerminate() {
		next := m.factory().Run(p, rng)
		runs++

		sc := p.Score(next)
		improved := sc > bestScore
		if improved {
			best, bestScore = next, sc
		}
		m.term.Iteration()

		m.log.V(logTrace).Info("run finished", "run", runs, "score", sc, "best", bestScore)
		m.emit(runs, float64(bestScore), improved)
	}
	m.log.V(logDebug).Info("restarts finished", "runs", runs, "best", bestScore)

	return best
}
