package gtsp

import "github.com/katalvlaran/clusterpath/search"

// Type shorthands for the search framework instantiated on GTSP.
type (
	// MoveSource is a MoveNeighborhood over GTSP tours.
	MoveSource[C Cost] = search.MoveNeighborhood[*Problem[C], Solution[C], C]
	// Neighbors is a Neighborhood over GTSP tours.
	Neighbors[C Cost] = search.Neighborhood[*Problem[C], Solution[C]]
	// Improver transforms GTSP tours.
	Improver[C Cost] = search.Improver[*Problem[C], Solution[C]]
	// MetaHeuristic builds GTSP tours from a random source.
	MetaHeuristic[C Cost] = search.MetaHeuristic[*Problem[C], Solution[C]]
)

// NewLocalSearch returns steepest-ascent local search over moves.
func NewLocalSearch[C Cost](moves MoveSource[C], term search.Termination, opts ...search.Option) Improver[C] {
	return search.NewLocalSearch[*Problem[C], Solution[C], C](moves, term, opts...)
}

// NewTabuSearch returns tabu search over neighbors with a tabu list of length entries.
func NewTabuSearch[C Cost](neighbors Neighbors[C], length int, term search.Termination, opts ...search.Option) Improver[C] {
	return search.NewTabuSearch[*Problem[C], Solution[C], C](neighbors, length, term, opts...)
}

// NewCycle returns a round-robin over improvers.
func NewCycle[C Cost](term search.Termination, improvers []Improver[C], opts ...search.Option) Improver[C] {
	return search.NewCycle[*Problem[C], Solution[C], C](term, improvers, opts...)
}

// NewChain returns first followed by second.
func NewChain[C Cost](first, second Improver[C]) Improver[C] {
	return search.NewChain[*Problem[C], Solution[C]](first, second)
}

// NewExploreOnce returns a single best-neighbor step over neighbors.
func NewExploreOnce[C Cost](neighbors Neighbors[C]) Improver[C] {
	return search.NewExploreOnce[*Problem[C], Solution[C], C](neighbors)
}

// NewRandomStart runs imp from a random initial tour.
func NewRandomStart[C Cost](imp Improver[C]) MetaHeuristic[C] {
	return search.NewRandomStart[*Problem[C], Solution[C], C](imp)
}

// NewMultistart keeps the best of repeated runs built by factory.
func NewMultistart[C Cost](term search.Termination, factory func() MetaHeuristic[C], opts ...search.Option) MetaHeuristic[C] {
	return search.NewMultistart[*Problem[C], Solution[C], C](term, factory, opts...)
}

// NewParallelMultistart runs trials independent runs on at most workers goroutines.
func NewParallelMultistart[C Cost](trials, workers int, factory func(trial int) MetaHeuristic[C], opts ...search.Option) MetaHeuristic[C] {
	return search.NewParallelMultistart[*Problem[C], Solution[C], C](trials, workers, factory, opts...)
}

// Materialize adapts a MoveSource into Neighbors.
func Materialize[C Cost](moves MoveSource[C]) Neighbors[C] {
	return search.Materialize[*Problem[C], Solution[C], C](moves)
}
