package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/metrics"
	"github.com/katalvlaran/clusterpath/search"
)

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	c := metrics.New(reg)

	c.Observe(search.Event{Strategy: "ls", Iteration: 1, Score: -10, Improved: true})
	c.Observe(search.Event{Strategy: "ls", Iteration: 2, Score: -8, Improved: true})
	c.Observe(search.Event{Strategy: "tabu", Iteration: 1, Score: -12, Improved: false})

	want := `
# HELP clusterpath_strategy_improvements_total Iterations that raised the best score, by strategy name
# TYPE clusterpath_strategy_improvements_total counter
clusterpath_strategy_improvements_total{strategy="ls"} 2
# HELP clusterpath_strategy_iterations_total Completed strategy iterations by strategy name
# TYPE clusterpath_strategy_iterations_total counter
clusterpath_strategy_iterations_total{strategy="ls"} 2
clusterpath_strategy_iterations_total{strategy="tabu"} 1
# HELP clusterpath_strategy_best_score Best score last reported by a strategy (negated tour weight)
# TYPE clusterpath_strategy_best_score gauge
clusterpath_strategy_best_score{strategy="ls"} -8
clusterpath_strategy_best_score{strategy="tabu"} -12
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want),
		"clusterpath_strategy_iterations_total",
		"clusterpath_strategy_improvements_total",
		"clusterpath_strategy_best_score",
	))
}

func TestCollector_ObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	c.ObserveRun("tabu-2opt", 30*time.Millisecond, 123)
	c.ObserveRun("tabu-2opt", 50*time.Millisecond, 120)

	n, err := testutil.GatherAndCount(reg, "clusterpath_run_duration_seconds", "clusterpath_run_weight")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestCollector_WiredIntoStrategy(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	p, err := gtsp.NewProblem([][]int64{
		{0, 1, 2, 1},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{1, 2, 1, 0},
	}, [][]int{{0}, {1}, {2}, {3}})
	require.NoError(t, err)
	start, err := p.NewSolution([]int{0, 2, 1, 3})
	require.NoError(t, err)

	ls := gtsp.NewLocalSearch[int64](gtsp.Swap[int64]{}, search.Never(),
		search.WithName("swap-ls"), search.WithObserver(c))
	require.Equal(t, int64(4), ls.Improve(p, start).Weight())

	require.Equal(t, 1.0, testutil.ToFloat64(c.Iterations("swap-ls")))
	require.Equal(t, -4.0, testutil.ToFloat64(c.BestScore("swap-ls")))
}
