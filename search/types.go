// SPDX-License-Identifier: MIT
// Package search - core contracts shared by every strategy and neighborhood.
//
// Contracts:
//   - Scores are maximized. A problem that minimizes a cost reports -cost.
//   - Neighborhood and MoveNeighborhood sequences are finite and restartable:
//     ranging over the returned iter.Seq twice yields the same candidates.
//   - Moves are scoped to one scan; callers must not retain them.
package search

import (
	"iter"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Score is the numeric type of a solution score and of score deltas.
type Score interface {
	constraints.Signed | constraints.Float
}

// Problem is an optimization target.
type Problem[S any, V Score] interface {
	// Score returns the score of s. Higher is better.
	Score(s S) V
	// InitialSolution builds a random feasible solution from rng.
	InitialSolution(rng *rand.Rand) S
}

// Equaler is implemented by solutions that support structural equality.
// TabuSearch needs it to recognize revisits.
type Equaler[S any] interface {
	Equal(other S) bool
}

// Move is one candidate transformation of a current solution.
type Move[S any, V Score] interface {
	// ScoreIncrease returns score(candidate) - score(current).
	ScoreIncrease() V
	// IsImproving reports ScoreIncrease() > 0.
	IsImproving() bool
	// Solution materializes the candidate.
	Solution() S
}

// MoveNeighborhood generates the moves applicable to current.
type MoveNeighborhood[P, S any, V Score] interface {
	Moves(p P, current S) iter.Seq[Move[S, V]]
}

// Neighborhood generates candidate solutions reachable from current.
type Neighborhood[P, S any] interface {
	Neighbors(p P, current S) iter.Seq[S]
}

// Improver transforms a solution into a solution that is at least as good
// under the improver's own acceptance rule.
type Improver[P, S any] interface {
	Improve(p P, current S) S
}

// MetaHeuristic produces a solution from scratch using rng.
type MetaHeuristic[P, S any] interface {
	Run(p P, rng *rand.Rand) S
}

// materialized adapts a MoveNeighborhood into a Neighborhood.
type materialized[P, S any, V Score] struct {
	moves MoveNeighborhood[P, S, V]
}

// Materialize turns every Move of mn into its materialized solution.
func Materialize[P, S any, V Score](mn MoveNeighborhood[P, S, V]) Neighborhood[P, S] {
	return materialized[P, S, V]{moves: mn}
}

func (m materialized[P, S, V]) Neighbors(p P, current S) iter.Seq[S] {
	return func(yield func(S) bool) {
		for mv := range m.moves.Moves(p, current) {
			if !yield(mv.Solution()) {
				return
			}
		}
	}
}

// ImproverFunc lets an ordinary function act as an Improver.
type ImproverFunc[P, S any] func(p P, current S) S

// Improve calls f(p, current).
func (f ImproverFunc[P, S]) Improve(p P, current S) S { return f(p, current) }

// bestMove returns the move with the largest ScoreIncrease; the first one wins ties.
// ok is false when the sequence is empty.
func bestMove[S any, V Score](moves iter.Seq[Move[S, V]]) (best Move[S, V], ok bool) {
	var (
		bestInc V
		inc     V
	)
	for mv := range moves {
		inc = mv.ScoreIncrease()
		if !ok || inc > bestInc {
			best, bestInc, ok = mv, inc, true
		}
	}

	return best, ok
}
