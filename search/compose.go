// Package search - composition of improvers.
//
//   - Chain: fixed two-stage pipeline, second(first(x)).
//   - Cycle: round-robin over a list of improvers. An improver whose result
//     does not raise the score is evicted for the rest of the run; otherwise
//     the result is adopted and the next improver is tried.
//   - ExploreOnce: one step to the best neighbor of a Neighborhood.
package search

// Chain applies First, then Second to the result.
type Chain[P, S any] struct {
	First  Improver[P, S]
	Second Improver[P, S]
}

// NewChain returns first followed by second.
func NewChain[P, S any](first, second Improver[P, S]) *Chain[P, S] {
	return &Chain[P, S]{First: first, Second: second}
}

// Improve implements Improver.
func (c *Chain[P, S]) Improve(p P, current S) S {
	return c.Second.Improve(p, c.First.Improve(p, current))
}

// Cycle is a greedy round-robin over improvers with eviction.
type Cycle[P Problem[S, V], S any, V Score] struct {
	improvers []Improver[P, S]
	term      Termination
	settings
}

// NewCycle returns a Cycle over a copy of improvers bounded by term.
func NewCycle[P Problem[S, V], S any, V Score](
	term Termination,
	improvers []Improver[P, S],
	opts ...Option,
) *Cycle[P, S, V] {
	own := make([]Improver[P, S], len(improvers))
	copy(own, improvers)

	return &Cycle[P, S, V]{
		improvers: own,
		term:      term,
		settings:  newSettings("cycle", opts),
	}
}

// Len reports how many improvers are still in rotation.
func (c *Cycle[P, S, V]) Len() int { return len(c.improvers) }

// Improve implements Improver. Evictions persist on the Cycle value.
func (c *Cycle[P, S, V]) Improve(p P, current S) S {
	var (
		score = p.Score(current)
		i     int
		iter  int
	)
	for !c.term.ShouldTerminate() && len(c.improvers) > 0 {
		i %= len(c.improvers)
		next := c.improvers[i].Improve(p, current)

		nextScore := p.Score(next)
		improved := nextScore > score
		if improved {
			current, score = next, nextScore
			i++
		} else {
			c.log.V(logTrace).Info("improver evicted", "index", i, "remaining", len(c.improvers)-1)
			c.improvers = append(c.improvers[:i], c.improvers[i+1:]...)
		}
		c.term.Iteration()
		iter++
		c.emit(iter, float64(score), improved)
	}
	c.log.V(logDebug).Info("cycle finished", "iterations", iter, "remaining", len(c.improvers))

	return current
}

// ExploreOnce moves to the best neighbor, improving or not. It returns current
// when the neighborhood is empty.
type ExploreOnce[P Problem[S, V], S any, V Score] struct {
	neighbors Neighborhood[P, S]
}

// NewExploreOnce wraps a Neighborhood.
func NewExploreOnce[P Problem[S, V], S any, V Score](n Neighborhood[P, S]) *ExploreOnce[P, S, V] {
	return &ExploreOnce[P, S, V]{neighbors: n}
}

// Improve implements Improver.
func (e *ExploreOnce[P, S, V]) Improve(p P, current S) S {
	var (
		best      = current
		bestScore V
		found     bool
	)
	for s := range e.neighbors.Neighbors(p, current) {
		if sc := p.Score(s); !found || sc > bestScore {
			best, bestScore, found = s, sc, true
		}
	}

	return best
}
