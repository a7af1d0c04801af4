// Package search - termination policy shared by all iterative strategies.
//
// A Termination is one of:
//   - Iterations(n): stop after n completed iterations (never below zero),
//   - Timeout(deadline): stop once the clock is past deadline,
//   - Never(): never stop on its own; pair it with an outer bound.
//
// Strategies call ShouldTerminate before starting an iteration and Iteration
// after completing one. Termination is a value: each strategy owns its copy.
package search

import (
	"fmt"
	"time"

	"k8s.io/utils/clock"
)

// TerminationKind selects the stopping rule of a Termination.
type TerminationKind int

const (
	// KindNever never terminates.
	KindNever TerminationKind = iota
	// KindIterations terminates when the remaining budget reaches zero.
	KindIterations
	// KindTimeout terminates once the deadline has passed.
	KindTimeout
)

// String implements fmt.Stringer.
func (k TerminationKind) String() string {
	switch k {
	case KindIterations:
		return "iterations"
	case KindTimeout:
		return "timeout"
	default:
		return "never"
	}
}

// Termination is a polling stop condition.
type Termination struct {
	kind      TerminationKind
	remaining int
	deadline  time.Time
	clock     clock.PassiveClock
}

// Iterations returns a budget of n completed iterations. n<0 is treated as 0.
func Iterations(n int) Termination {
	if n < 0 {
		n = 0
	}

	return Termination{kind: KindIterations, remaining: n}
}

// Timeout returns a policy that terminates once the real clock passes deadline.
func Timeout(deadline time.Time) Termination {
	return TimeoutOn(clock.RealClock{}, deadline)
}

// TimeoutOn is Timeout with an explicit time source.
func TimeoutOn(c clock.PassiveClock, deadline time.Time) Termination {
	return Termination{kind: KindTimeout, deadline: deadline, clock: c}
}

// TimeoutAfter returns a deadline d after c.Now().
func TimeoutAfter(c clock.PassiveClock, d time.Duration) Termination {
	return TimeoutOn(c, c.Now().Add(d))
}

// Never returns a policy that never terminates.
// Precondition: the caller bounds the run some other way.
func Never() Termination {
	return Termination{kind: KindNever}
}

// Kind reports the stopping rule.
func (t Termination) Kind() TerminationKind { return t.kind }

// Remaining reports the iteration budget left (0 for non-iteration kinds).
func (t Termination) Remaining() int { return t.remaining }

// Deadline reports the deadline (zero for non-timeout kinds).
func (t Termination) Deadline() time.Time { return t.deadline }

// ShouldTerminate reports whether no further iteration may start.
func (t *Termination) ShouldTerminate() bool {
	switch t.kind {
	case KindIterations:
		return t.remaining <= 0
	case KindTimeout:
		c := t.clock
		if c == nil {
			c = clock.RealClock{}
		}

		return c.Now().After(t.deadline)
	default:
		return false
	}
}

// Iteration records one completed iteration.
func (t *Termination) Iteration() {
	if t.kind == KindIterations && t.remaining > 0 {
		t.remaining--
	}
}

// String implements fmt.Stringer.
func (t Termination) String() string {
	switch t.kind {
	case KindIterations:
		return fmt.Sprintf("iterations(%d)", t.remaining)
	case KindTimeout:
		return fmt.Sprintf("timeout(%s)", t.deadline.Format(time.RFC3339Nano))
	default:
		return "never"
	}
}
