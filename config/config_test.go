package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clusterpath/config"
)

const sampleYAML = `
seed: 42
cost: float
output: csv
strategy:
  name: tabu-then-polish
  kind: chain
  steps:
    - kind: tabu
      neighborhood: 2opt
      tabuLength: 7
      termination:
        timeout: 2s
    - kind: cluster-opt
bench:
  repeats: 3
  recipes:
    - name: ms
      kind: multistart
      termination:
        iterations: 5
      inner:
        kind: local
        neighborhood: inserts
    - name: par
      kind: parallel
      trials: 8
      workers: 2
      inner:
        kind: cycle
        steps:
          - kind: local
            neighborhood: swap
          - kind: explore
            neighborhood: cluster
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clusterpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	require.Equal(t, int64(1), cfg.Seed)
	require.Equal(t, config.CostInt, cfg.Cost)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, config.OutputYAML, cfg.Output)
	require.Equal(t, 10, cfg.Bench.Repeats)
	require.Equal(t, config.DefaultRecipe(), cfg.Strategy)
}

func TestLoad_File(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleYAML), nil)
	require.NoError(t, err)

	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, config.CostFloat, cfg.Cost)
	require.Equal(t, config.OutputCSV, cfg.Output)
	require.Equal(t, 3, cfg.Bench.Repeats)

	s := cfg.Strategy
	require.Equal(t, config.KindChain, s.Kind)
	require.Len(t, s.Steps, 2)
	require.Equal(t, 7, s.Steps[0].TabuLength)
	require.Equal(t, 2*time.Second, s.Steps[0].Termination.Timeout)

	require.Len(t, cfg.Bench.Recipes, 2)
	require.Equal(t, "par", cfg.Bench.Recipes[1].Name)
	require.Equal(t, config.KindCycle, cfg.Bench.Recipes[1].Inner.Kind)
	require.Equal(t, config.NeighborhoodCluster, cfg.Bench.Recipes[1].Inner.Steps[1].Neighborhood)
}

func TestLoad_EnvAndFlagsOverride(t *testing.T) {
	t.Setenv("CLUSTERPATH_SEED", "99")
	t.Setenv("CLUSTERPATH_BENCH_REPEATS", "4")
	t.Setenv("CLUSTERPATH_LOGLEVEL", "debug")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--repeats=6", "--cost=float"}))

	cfg, err := config.Load(writeConfig(t, sampleYAML), fs)
	require.NoError(t, err)
	require.Equal(t, int64(99), cfg.Seed, "env beats file")
	require.Equal(t, 6, cfg.Bench.Repeats, "flag beats env")
	require.Equal(t, config.CostFloat, cfg.Cost)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, config.OutputCSV, cfg.Output, "unchanged flags do not override the file")
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "cost: decimal\n"), nil)
	require.ErrorIs(t, err, config.ErrUnknownCost)

	_, err = config.Load(writeConfig(t, "output: xml\n"), nil)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeConfig(t, "strategy:\n  kind: annealing\n"), nil)
	require.ErrorIs(t, err, config.ErrUnknownStrategy)
}

func TestRecipe_Validate(t *testing.T) {
	local := func(n string) config.Recipe { return config.Recipe{Kind: config.KindLocal, Neighborhood: n} }
	iters := config.TerminationSpec{Iterations: 3}

	cases := []struct {
		name   string
		recipe config.Recipe
		want   error
	}{
		{"local swap", local("swap"), nil},
		{"local cluster", local("cluster"), config.ErrUnknownNeighborhood},
		{"local unknown", local("3opt"), config.ErrUnknownNeighborhood},
		{"tabu unbounded", config.Recipe{Kind: config.KindTabu, Neighborhood: "2opt"}, config.ErrInvalidRecipe},
		{"tabu ok", config.Recipe{Kind: config.KindTabu, Neighborhood: "cluster", Termination: iters}, nil},
		{"tabu negative length", config.Recipe{Kind: config.KindTabu, Neighborhood: "swap", TabuLength: -1, Termination: iters}, config.ErrInvalidRecipe},
		{"both bounds", config.Recipe{Kind: config.KindLocal, Neighborhood: "swap", Termination: config.TerminationSpec{Iterations: 1, Timeout: time.Second}}, config.ErrInvalidRecipe},
		{"chain arity", config.Recipe{Kind: config.KindChain, Steps: []config.Recipe{local("swap")}}, config.ErrInvalidRecipe},
		{"empty cycle", config.Recipe{Kind: config.KindCycle}, config.ErrInvalidRecipe},
		{"nested meta", config.Recipe{Kind: config.KindCycle, Steps: []config.Recipe{{Kind: config.KindMultistart}}}, config.ErrInvalidRecipe},
		{"nested unknown", config.Recipe{Kind: config.KindCycle, Steps: []config.Recipe{{Kind: "ga"}}}, config.ErrUnknownStrategy},
		{"nested bad neighborhood", config.Recipe{Kind: config.KindChain, Steps: []config.Recipe{local("swap"), local("")}}, config.ErrUnknownNeighborhood},
		{"multistart no inner", config.Recipe{Kind: config.KindMultistart, Termination: iters}, config.ErrInvalidRecipe},
		{"multistart unbounded", config.Recipe{Kind: config.KindMultistart, Inner: &config.Recipe{Kind: config.KindClusterOpt}}, config.ErrInvalidRecipe},
		{"parallel no trials", config.Recipe{Kind: config.KindParallel, Inner: &config.Recipe{Kind: config.KindClusterOpt}}, config.ErrInvalidRecipe},
		{"parallel with termination", config.Recipe{Kind: config.KindParallel, Trials: 4, Termination: iters, Inner: &config.Recipe{Kind: config.KindClusterOpt}}, config.ErrInvalidRecipe},
		{"chain with termination", config.Recipe{Kind: config.KindChain, Termination: iters, Steps: []config.Recipe{local("swap"), local("2opt")}}, config.ErrInvalidRecipe},
		{"cluster-opt with timeout", config.Recipe{Kind: config.KindClusterOpt, Termination: config.TerminationSpec{Timeout: time.Second}}, config.ErrInvalidRecipe},
		{"parallel ok", config.Recipe{Kind: config.KindParallel, Trials: 4, Inner: &config.Recipe{Kind: config.KindClusterOpt}}, nil},
		{"default", config.DefaultRecipe(), nil},
		{"default bench 0", config.DefaultBenchRecipes()[0], nil},
		{"default bench 2", config.DefaultBenchRecipes()[2], nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.recipe.Validate()
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestConfig_ValidateBenchNames(t *testing.T) {
	cfg := config.Config{
		Cost:     config.CostInt,
		Output:   config.OutputYAML,
		Strategy: config.DefaultRecipe(),
		Bench: config.Bench{
			Repeats: 1,
			Recipes: []config.Recipe{config.DefaultRecipe(), config.DefaultRecipe()},
		},
	}
	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidRecipe, "duplicate names")

	cfg.Bench.Recipes[1].Name = "other"
	require.NoError(t, cfg.Validate())
}
