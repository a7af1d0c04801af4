// Package search is a small, generic metaheuristic framework.
//
// The framework is built from four capabilities:
//
//   - Problem        - scores a solution (higher is better) and builds a random one.
//   - Neighborhood   - yields candidate solutions reachable from a current solution.
//   - MoveNeighborhood - yields Moves: candidates that report their score delta
//     before (or without) being materialized. Materialize bridges any
//     MoveNeighborhood into a plain Neighborhood.
//   - Improver / MetaHeuristic - strategies. An Improver transforms a given
//     solution; a MetaHeuristic starts from a random source.
//
// Strategies shipped here:
//
//	LocalSearch        steepest-ascent hill climbing over a MoveNeighborhood
//	TabuSearch         hill climbing with a bounded FIFO of forbidden solutions
//	ExploreOnce        one step to the best neighbor
//	Chain              first improver, then second improver on its output
//	Cycle              round-robin over improvers, evicting the ones that fail
//	RandomStart        Improver → MetaHeuristic over Problem.InitialSolution
//	Multistart         best of repeated MetaHeuristic runs
//	ParallelMultistart independent Multistart trials on a goroutine pool
//
// Every iterative strategy owns a Termination (iteration budget, wall-clock
// deadline, or never). Termination is polled between iterations only, so a
// deadline may be overrun by one neighborhood scan.
//
// Concurrency:
//   - Strategies are synchronous and not goroutine-safe; each search owns its
//     solutions, tabu list and termination.
//   - A Problem is read-only during a search and may be shared by parallel runs.
//   - *rand.Rand is not goroutine-safe; use DeriveRNG to split streams.
package search
