// Package runner turns configuration recipes into composed strategies and
// drives them: Solve runs one recipe once, Bench repeats several recipes from
// one seeded random stream and summarizes the weights.
package runner

import (
	"fmt"
	"runtime"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/katalvlaran/clusterpath/config"
	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/search"
)

// improverMaker builds a fresh Improver; every call yields new strategy
// state, including a fresh termination budget.
type improverMaker[C gtsp.Cost] func() gtsp.Improver[C]

// metaMaker builds a fresh MetaHeuristic.
type metaMaker[C gtsp.Cost] func() gtsp.MetaHeuristic[C]

// builder compiles recipes for cost type C.
type builder[C gtsp.Cost] struct {
	log      logr.Logger
	observer search.Observer
	clock    clock.PassiveClock
}

// Compile validates r and returns a constructor of MetaHeuristics for it.
// Improver recipes are started from a random tour.
func (b builder[C]) compile(r config.Recipe) (metaMaker[C], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return b.meta(r, r.Name)
}

func (b builder[C]) options(r config.Recipe, name string) []search.Option {
	if name == "" {
		name = r.Kind
	}

	return []search.Option{
		search.WithName(name),
		search.WithLogger(b.log),
		search.WithObserver(b.observer),
	}
}

func (b builder[C]) termination(t config.TerminationSpec) func() search.Termination {
	switch {
	case t.Iterations > 0:
		n := t.Iterations
		return func() search.Termination { return search.Iterations(n) }
	case t.Timeout > 0:
		d := t.Timeout
		return func() search.Termination { return search.TimeoutAfter(b.clock, d) }
	}

	return search.Never
}

func (b builder[C]) meta(r config.Recipe, name string) (metaMaker[C], error) {
	switch r.Kind {
	case config.KindMultistart:
		inner, err := b.improver(*r.Inner, name+"/inner")
		if err != nil {
			return nil, err
		}
		term, opts := b.termination(r.Termination), b.options(r, name)
		return func() gtsp.MetaHeuristic[C] {
			return gtsp.NewMultistart[C](term(), func() gtsp.MetaHeuristic[C] {
				return gtsp.NewRandomStart[C](inner())
			}, opts...)
		}, nil

	case config.KindParallel:
		inner, err := b.improver(*r.Inner, name+"/inner")
		if err != nil {
			return nil, err
		}
		trials, workers, opts := r.Trials, r.Workers, b.options(r, name)
		if workers == 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		return func() gtsp.MetaHeuristic[C] {
			return gtsp.NewParallelMultistart[C](trials, workers, func(int) gtsp.MetaHeuristic[C] {
				return gtsp.NewRandomStart[C](inner())
			}, opts...)
		}, nil
	}

	imp, err := b.improver(r, name)
	if err != nil {
		return nil, err
	}

	return func() gtsp.MetaHeuristic[C] { return gtsp.NewRandomStart[C](imp()) }, nil
}

func (b builder[C]) improver(r config.Recipe, name string) (improverMaker[C], error) {
	if name == "" {
		name = r.Kind
	}
	term, opts := b.termination(r.Termination), b.options(r, name)

	switch r.Kind {
	case config.KindLocal:
		moves, err := moveSource[C](r.Neighborhood)
		if err != nil {
			return nil, err
		}
		return func() gtsp.Improver[C] { return gtsp.NewLocalSearch[C](moves, term(), opts...) }, nil

	case config.KindTabu:
		neighbors, err := neighborhood[C](r.Neighborhood)
		if err != nil {
			return nil, err
		}
		length := r.TabuLength
		return func() gtsp.Improver[C] { return gtsp.NewTabuSearch[C](neighbors, length, term(), opts...) }, nil

	case config.KindExplore:
		neighbors, err := neighborhood[C](r.Neighborhood)
		if err != nil {
			return nil, err
		}
		return func() gtsp.Improver[C] { return gtsp.NewExploreOnce[C](neighbors) }, nil

	case config.KindClusterOpt:
		return func() gtsp.Improver[C] { return gtsp.ClusterOptimization[C]{} }, nil

	case config.KindChain:
		steps, err := b.steps(r, name)
		if err != nil {
			return nil, err
		}
		return func() gtsp.Improver[C] { return gtsp.NewChain[C](steps[0](), steps[1]()) }, nil

	case config.KindCycle:
		steps, err := b.steps(r, name)
		if err != nil {
			return nil, err
		}
		return func() gtsp.Improver[C] {
			imps := make([]gtsp.Improver[C], len(steps))
			for i, mk := range steps {
				imps[i] = mk()
			}
			return gtsp.NewCycle[C](term(), imps, opts...)
		}, nil
	}

	return nil, fmt.Errorf("%s: kind %q: %w", name, r.Kind, config.ErrUnknownStrategy)
}

func (b builder[C]) steps(r config.Recipe, name string) ([]improverMaker[C], error) {
	out := make([]improverMaker[C], len(r.Steps))
	for i, step := range r.Steps {
		stepName := step.Name
		if stepName == "" {
			stepName = fmt.Sprintf("%s/%d-%s", name, i, step.Kind)
		}
		mk, err := b.improver(step, stepName)
		if err != nil {
			return nil, err
		}
		out[i] = mk
	}

	return out, nil
}

func moveSource[C gtsp.Cost](name string) (gtsp.MoveSource[C], error) {
	switch name {
	case config.NeighborhoodSwap:
		return gtsp.Swap[C]{}, nil
	case config.NeighborhoodTwoOpt:
		return gtsp.TwoOpt[C]{}, nil
	case config.NeighborhoodInserts:
		return gtsp.Inserts[C]{}, nil
	}

	return nil, fmt.Errorf("move neighborhood %q: %w", name, config.ErrUnknownNeighborhood)
}

func neighborhood[C gtsp.Cost](name string) (gtsp.Neighbors[C], error) {
	if name == config.NeighborhoodCluster {
		return gtsp.ClusterOptimization[C]{}, nil
	}
	moves, err := moveSource[C](name)
	if err != nil {
		return nil, err
	}

	return gtsp.Materialize[C](moves), nil
}
