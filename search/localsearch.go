// Package search - steepest-ascent local search.
//
// Each iteration scans every move of the neighborhood for the current solution,
// takes the one with the largest score increase, and adopts it when it is
// improving. The search stops at a local optimum or when the termination
// policy fires, whichever comes first.
//
// Complexity: one iteration costs one full neighborhood scan.
package search

// LocalSearch is a hill-climbing Improver over a MoveNeighborhood.
type LocalSearch[P Problem[S, V], S any, V Score] struct {
	moves MoveNeighborhood[P, S, V]
	term  Termination
	settings
}

// NewLocalSearch returns a LocalSearch scanning moves and bounded by term.
func NewLocalSearch[P Problem[S, V], S any, V Score](
	moves MoveNeighborhood[P, S, V],
	term Termination,
	opts ...Option,
) *LocalSearch[P, S, V] {
	return &LocalSearch[P, S, V]{
		moves:    moves,
		term:     term,
		settings: newSettings("local-search", opts),
	}
}

// Improve climbs from current and returns the last adopted solution.
func (ls *LocalSearch[P, S, V]) Improve(p P, current S) S {
	var (
		best = current
		iter int
	)
	for !ls.term.ShouldTerminate() {
		mv, ok := bestMove(ls.moves.Moves(p, best))
		if !ok || !mv.IsImproving() {
			ls.log.V(logDebug).Info("local optimum reached", "iterations", iter)
			return best
		}
		best = mv.Solution()
		ls.term.Iteration()
		iter++

		ls.log.V(logTrace).Info("move adopted", "iteration", iter, "increase", mv.ScoreIncrease())
		ls.emit(iter, float64(p.Score(best)), true)
	}
	ls.log.V(logDebug).Info("terminated", "iterations", iter, "termination", ls.term.String())

	return best
}
