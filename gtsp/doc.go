// Package gtsp models the Generalized Travelling Salesman Problem and its
// neighborhoods for the search framework.
//
// An instance is a vertex set partitioned into disjoint clusters plus an n×n
// (possibly asymmetric) cost matrix. A solution is a cyclic tour visiting
// exactly one vertex per cluster; its weight is the sum of its arcs including
// the closing arc. Problem.Score returns -weight, so every search strategy
// maximizes score while minimizing tour weight.
//
// Neighborhoods:
//
//	Swap                 exchange two positions                 O(m²) moves, full recompute
//	TwoOpt               reverse a segment                      O(m²) moves, incremental Δ
//	Inserts              relocate + reselect a representative   O(m²·|C|) moves, incremental Δ
//	ClusterOptimization  DP over the fixed cluster order        exact for that order
//
// The cost type C is any signed integer or float type (int64 and float64 are
// the usual choices).
//
// Quick start:
//
//	p, _ := gtsp.NewProblem(dist, clusters)
//	ls := gtsp.NewLocalSearch[int64](gtsp.TwoOpt[int64]{}, search.Never())
//	best := gtsp.NewRandomStart(ls).Run(p, search.NewRNG(42))
package gtsp
