// SPDX-License-Identifier: MIT
// Package search - tabu search.
//
// The tabu list is a FIFO of the last L accepted solutions, seeded with the
// starting solution. Every iteration expands the most recently accepted
// solution (the tail of the list, which may be worse than the best found),
// discards neighbors structurally equal to a listed solution, and moves to the
// best remaining neighbor even when it is worse. The best solution ever seen is
// returned.
//
// Complexity: one iteration costs one neighborhood scan times O(L) equality
// checks per candidate.
package search

// TabuSearch is a bounded-memory Improver over a Neighborhood.
type TabuSearch[P Problem[S, V], S Equaler[S], V Score] struct {
	neighbors Neighborhood[P, S]
	length    int
	term      Termination
	settings
}

// NewTabuSearch returns a TabuSearch keeping the last length accepted
// solutions. length<1 is treated as 1.
func NewTabuSearch[P Problem[S, V], S Equaler[S], V Score](
	neighbors Neighborhood[P, S],
	length int,
	term Termination,
	opts ...Option,
) *TabuSearch[P, S, V] {
	if length < 1 {
		length = 1
	}

	return &TabuSearch[P, S, V]{
		neighbors: neighbors,
		length:    length,
		term:      term,
		settings:  newSettings("tabu-search", opts),
	}
}

// Length reports the tabu list capacity.
func (ts *TabuSearch[P, S, V]) Length() int { return ts.length }

// Improve runs tabu search from current.
func (ts *TabuSearch[P, S, V]) Improve(p P, current S) S {
	var (
		best      = current
		bestScore = p.Score(current)
		tabu      = newFIFO[S](ts.length)
		iter      int
	)
	tabu.push(current)

	for !ts.term.ShouldTerminate() {
		var (
			cand      S
			candScore V
			found     bool
		)
		for s := range ts.neighbors.Neighbors(p, tabu.last()) {
			if tabu.contains(s) {
				continue
			}
			if sc := p.Score(s); !found || sc > candScore {
				cand, candScore, found = s, sc, true
			}
		}
		if !found {
			ts.log.V(logDebug).Info("no admissible neighbor", "iterations", iter)
			return best
		}

		improved := candScore > bestScore
		if improved {
			best, bestScore = cand, candScore
		}
		tabu.push(cand)
		ts.term.Iteration()
		iter++

		ts.log.V(logTrace).Info("neighbor accepted", "iteration", iter, "score", candScore, "improved", improved)
		ts.emit(iter, float64(bestScore), improved)
	}
	ts.log.V(logDebug).Info("terminated", "iterations", iter, "termination", ts.term.String())

	return best
}

// fifo is a fixed-capacity ring; pushing onto a full ring evicts the oldest entry.
type fifo[S Equaler[S]] struct {
	buf  []S
	head int // index of the oldest entry
	size int
}

func newFIFO[S Equaler[S]](capacity int) *fifo[S] {
	return &fifo[S]{buf: make([]S, capacity)}
}

func (f *fifo[S]) push(s S) {
	if f.size < len(f.buf) {
		f.buf[(f.head+f.size)%len(f.buf)] = s
		f.size++
		return
	}
	f.buf[f.head] = s
	f.head = (f.head + 1) % len(f.buf)
}

func (f *fifo[S]) last() S {
	return f.buf[(f.head+f.size-1)%len(f.buf)]
}

func (f *fifo[S]) contains(s S) bool {
	var i int
	for i = 0; i < f.size; i++ {
		if f.buf[(f.head+i)%len(f.buf)].Equal(s) {
			return true
		}
	}

	return false
}
