// Package search - parallel restarts.
//
// ParallelMultistart runs independent trials on a bounded goroutine pool and
// reduces them to the best-scoring result. Trials share only the read-only
// problem; each owns a MetaHeuristic built by the factory and a random stream
// derived from the caller's rng before any goroutine starts, so the result is
// deterministic for a given seed regardless of scheduling.
package search

import (
	"math/rand"

	"github.com/sourcegraph/conc/pool"
)

// ParallelMultistart is a MetaHeuristic fanning trials out over goroutines.
type ParallelMultistart[P Problem[S, V], S any, V Score] struct {
	trials  int
	workers int
	factory func(trial int) MetaHeuristic[P, S]
	settings
}

// NewParallelMultistart runs trials independent MetaHeuristics built by factory
// on at most workers goroutines. trials<1 and workers<1 are treated as 1.
//
// Precondition: p must not be mutated while Run is in progress.
func NewParallelMultistart[P Problem[S, V], S any, V Score](
	trials, workers int,
	factory func(trial int) MetaHeuristic[P, S],
	opts ...Option,
) *ParallelMultistart[P, S, V] {
	if trials < 1 {
		trials = 1
	}
	if workers < 1 {
		workers = 1
	}

	return &ParallelMultistart[P, S, V]{
		trials:   trials,
		workers:  workers,
		factory:  factory,
		settings: newSettings("parallel-multistart", opts),
	}
}

// Run executes the trials and returns the best solution; ties go to the lowest trial index.
func (pm *ParallelMultistart[P, S, V]) Run(p P, rng *rand.Rand) S {
	var (
		rngs    = make([]*rand.Rand, pm.trials)
		results = make([]S, pm.trials)
		i       int
	)
	for i = 0; i < pm.trials; i++ {
		rngs[i] = DeriveRNG(rng, uint64(i))
	}

	wp := pool.New().WithMaxGoroutines(pm.workers)
	for i = 0; i < pm.trials; i++ {
		trial := i
		mh := pm.factory(trial)
		wp.Go(func() {
			results[trial] = mh.Run(p, rngs[trial])
		})
	}
	wp.Wait()

	var (
		best      = results[0]
		bestScore = p.Score(best)
	)
	pm.emit(1, float64(bestScore), true)
	for i = 1; i < pm.trials; i++ {
		sc := p.Score(results[i])
		improved := sc > bestScore
		if improved {
			best, bestScore = results[i], sc
		}
		pm.emit(i+1, float64(bestScore), improved)
	}
	pm.log.V(logDebug).Info("trials reduced", "trials", pm.trials, "workers", pm.workers, "best", bestScore)

	return best
}
