package config

import (
	"fmt"
	"time"
)

// Strategy kinds.
const (
	KindLocal      = "local"
	KindTabu       = "tabu"
	KindMultistart = "multistart"
	KindParallel   = "parallel"
	KindChain      = "chain"
	KindCycle      = "cycle"
	KindExplore    = "explore"
	KindClusterOpt = "cluster-opt"
)

// Neighborhood names.
const (
	NeighborhoodSwap    = "swap"
	NeighborhoodTwoOpt  = "2opt"
	NeighborhoodInserts = "inserts"
	NeighborhoodCluster = "cluster"
)

// Recipe describes a composed strategy. Improver kinds (local, tabu, chain,
// cycle, explore, cluster-opt) transform a tour; multistart and parallel
// restart an inner improver from random tours.
//
// Termination applies to local, tabu, cycle and multistart only. Parallel is
// bounded by Trials; chain, explore and cluster-opt stop on their own. Setting
// a termination on those kinds is rejected by Validate.
type Recipe struct {
	Name         string          `mapstructure:"name" yaml:"name,omitempty"`
	Kind         string          `mapstructure:"kind" yaml:"kind"`
	Neighborhood string          `mapstructure:"neighborhood" yaml:"neighborhood,omitempty"`
	TabuLength   int             `mapstructure:"tabuLength" yaml:"tabuLength,omitempty"`
	Trials       int             `mapstructure:"trials" yaml:"trials,omitempty"`
	Workers      int             `mapstructure:"workers" yaml:"workers,omitempty"`
	Termination  TerminationSpec `mapstructure:"termination" yaml:"termination,omitempty"`
	Inner        *Recipe         `mapstructure:"inner" yaml:"inner,omitempty"`
	Steps        []Recipe        `mapstructure:"steps" yaml:"steps,omitempty"`
}

// TerminationSpec selects a stopping rule. At most one field may be set;
// neither means unbounded.
type TerminationSpec struct {
	Iterations int           `mapstructure:"iterations" yaml:"iterations,omitempty"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// Bounded reports whether a stopping rule is set.
func (t TerminationSpec) Bounded() bool { return t.Iterations > 0 || t.Timeout > 0 }

// IsImprover reports whether kind transforms a given tour.
func IsImprover(kind string) bool {
	switch kind {
	case KindLocal, KindTabu, KindChain, KindCycle, KindExplore, KindClusterOpt:
		return true
	}

	return false
}

// IsMoveNeighborhood reports whether name is a move-based neighborhood.
func IsMoveNeighborhood(name string) bool {
	switch name {
	case NeighborhoodSwap, NeighborhoodTwoOpt, NeighborhoodInserts:
		return true
	}

	return false
}

func usesTermination(kind string) bool {
	switch kind {
	case KindChain, KindExplore, KindClusterOpt, KindParallel:
		return false
	}

	return true
}

func isNeighborhood(name string) bool {
	return IsMoveNeighborhood(name) || name == NeighborhoodCluster
}

// Validate checks r and every nested recipe.
//
// Errors: ErrUnknownStrategy, ErrUnknownNeighborhood, ErrInvalidRecipe.
func (r *Recipe) Validate() error {
	return r.validate(r.label())
}

func (r *Recipe) label() string {
	if r.Name != "" {
		return r.Name
	}

	return r.Kind
}

func (r *Recipe) validate(path string) error {
	t := r.Termination
	if t.Iterations < 0 || t.Timeout < 0 {
		return fmt.Errorf("%s: negative termination: %w", path, ErrInvalidRecipe)
	}
	if t.Iterations > 0 && t.Timeout > 0 {
		return fmt.Errorf("%s: set either iterations or timeout: %w", path, ErrInvalidRecipe)
	}
	if t.Bounded() && !usesTermination(r.Kind) {
		return fmt.Errorf("%s: %s does not take a termination: %w", path, r.Kind, ErrInvalidRecipe)
	}

	switch r.Kind {
	case KindLocal:
		if !IsMoveNeighborhood(r.Neighborhood) {
			return fmt.Errorf("%s: local search needs swap, 2opt or inserts, got %q: %w", path, r.Neighborhood, ErrUnknownNeighborhood)
		}

	case KindTabu:
		if !isNeighborhood(r.Neighborhood) {
			return fmt.Errorf("%s: neighborhood %q: %w", path, r.Neighborhood, ErrUnknownNeighborhood)
		}
		if r.TabuLength < 0 {
			return fmt.Errorf("%s: tabuLength %d < 0: %w", path, r.TabuLength, ErrInvalidRecipe)
		}
		if !t.Bounded() {
			return fmt.Errorf("%s: tabu search needs iterations or timeout: %w", path, ErrInvalidRecipe)
		}

	case KindExplore:
		if !isNeighborhood(r.Neighborhood) {
			return fmt.Errorf("%s: neighborhood %q: %w", path, r.Neighborhood, ErrUnknownNeighborhood)
		}

	case KindClusterOpt:

	case KindChain:
		if len(r.Steps) != 2 {
			return fmt.Errorf("%s: chain needs exactly 2 steps, got %d: %w", path, len(r.Steps), ErrInvalidRecipe)
		}
		return r.validateSteps(path)

	case KindCycle:
		if len(r.Steps) == 0 {
			return fmt.Errorf("%s: cycle needs at least one step: %w", path, ErrInvalidRecipe)
		}
		return r.validateSteps(path)

	case KindMultistart, KindParallel:
		if r.Inner == nil {
			return fmt.Errorf("%s: %s needs an inner recipe: %w", path, r.Kind, ErrInvalidRecipe)
		}
		if !IsImprover(r.Inner.Kind) {
			return fmt.Errorf("%s: inner kind %q is not an improver: %w", path, r.Inner.Kind, ErrInvalidRecipe)
		}
		if r.Kind == KindMultistart && !t.Bounded() {
			return fmt.Errorf("%s: multistart needs iterations or timeout: %w", path, ErrInvalidRecipe)
		}
		if r.Kind == KindParallel && (r.Trials < 1 || r.Workers < 0) {
			return fmt.Errorf("%s: parallel needs trials >= 1 and workers >= 0: %w", path, ErrInvalidRecipe)
		}
		return r.Inner.validate(path + "/inner")

	default:
		return fmt.Errorf("%s: kind %q: %w", path, r.Kind, ErrUnknownStrategy)
	}

	return nil
}

func (r *Recipe) validateSteps(path string) error {
	for i := range r.Steps {
		step := &r.Steps[i]
		if !IsImprover(step.Kind) {
			if step.Kind == KindMultistart || step.Kind == KindParallel {
				return fmt.Errorf("%s/steps[%d]: %s cannot be a step: %w", path, i, step.Kind, ErrInvalidRecipe)
			}
			return fmt.Errorf("%s/steps[%d]: kind %q: %w", path, i, step.Kind, ErrUnknownStrategy)
		}
		if err := step.validate(fmt.Sprintf("%s/steps[%d]", path, i)); err != nil {
			return err
		}
	}

	return nil
}

// DefaultRecipe is used when no strategy is configured: ten restarts of
// inserts local search polished by cluster optimization.
func DefaultRecipe() Recipe {
	return Recipe{
		Name:        "default",
		Kind:        KindMultistart,
		Termination: TerminationSpec{Iterations: 10},
		Inner: &Recipe{
			Kind: KindChain,
			Steps: []Recipe{
				{Kind: KindLocal, Neighborhood: NeighborhoodInserts},
				{Kind: KindClusterOpt},
			},
		},
	}
}

// DefaultBenchRecipes are benchmarked when none are configured: local search
// over 2-opt and swap, and tabu search over swap bounded to five iterations.
func DefaultBenchRecipes() []Recipe {
	return []Recipe{
		{Name: "ls-2opt", Kind: KindLocal, Neighborhood: NeighborhoodTwoOpt},
		{Name: "ls-swap", Kind: KindLocal, Neighborhood: NeighborhoodSwap},
		{Name: "tabu-swap", Kind: KindTabu, Neighborhood: NeighborhoodSwap, Termination: TerminationSpec{Iterations: 5}},
	}
}
