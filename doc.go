// Package clusterpath is a metaheuristic engine for the Generalized Traveling
// Salesman Problem: vertices are partitioned into clusters, and the goal is a
// cheapest cyclic tour visiting exactly one vertex of every cluster.
//
// 🚀 What is inside?
//
//	A composable search framework plus the GTSP model that plugs into it:
//		• Contracts: Problem, Move, MoveNeighborhood, Neighborhood, Improver, MetaHeuristic
//		• Strategies: steepest local search, tabu search, multistart, parallel multistart
//		• Composition: Chain (two stages), Cycle (round-robin with eviction), ExploreOnce
//		• Neighborhoods: swap, 2-opt, cluster-aware inserts, cluster optimization (DP)
//		• Termination: iteration budget, wall-clock deadline, unbounded
//
// ✨ Conventions
//
//   - score = -weight; every strategy maximizes score
//   - tours are immutable values with a cached weight that always matches the arcs
//   - randomness is an explicit *rand.Rand handed down from the caller
//   - a Problem is read-only and may be shared by concurrent searches
//
// Layout:
//
//	search/           - generic contracts, strategies, termination, RNG helpers
//	gtsp/             - instance, tour, neighborhoods, typed strategy constructors
//	loader/           - text formats for instances and tours
//	config/           - viper-backed configuration and strategy recipes
//	runner/           - recipe compilation, Solve and Bench
//	results/          - CSV sink, SQLite store, YAML report
//	metrics/          - Prometheus observer
//	cmd/clusterpath/  - command-line front end
//
// Quick example (four singleton clusters on a unit square):
//
//	0───1
//	│ ╳ │     tour [0 2 1 3] weighs 6; swap local search uncrosses it to 4
//	3───2
//
//	go install github.com/katalvlaran/clusterpath/cmd/clusterpath@latest
package clusterpath
