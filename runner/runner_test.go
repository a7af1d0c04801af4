package runner_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/go-logr/logr/testr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/katalvlaran/clusterpath/config"
	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/metrics"
	"github.com/katalvlaran/clusterpath/results"
	"github.com/katalvlaran/clusterpath/runner"
	"github.com/katalvlaran/clusterpath/search"
)

// threeClusters is {{0},{1,2},{3}}; the optimal tour 0→1→3 weighs 7.
func threeClusters() *gtsp.Problem[int64] {
	p, err := gtsp.NewProblem([][]int64{
		{0, 1, 10, 5},
		{1, 0, 3, 1},
		{10, 3, 0, 10},
		{5, 1, 10, 0},
	}, [][]int{{0}, {1, 2}, {3}}, gtsp.WithSymmetric(true))
	Expect(err).NotTo(HaveOccurred())

	return p
}

// ring is n singleton clusters on a directed ring: i→i+1 costs 1, every other
// arc costs 10, so the optimum weighs n.
func ring(n int) *gtsp.Problem[float64] {
	dist := make([][]float64, n)
	clusters := make([][]int, n)
	for u := range dist {
		dist[u] = make([]float64, n)
		for v := range dist[u] {
			if u != v {
				dist[u][v] = 10
			}
		}
		dist[u][(u+1)%n] = 1
		clusters[u] = []int{u}
	}
	p, err := gtsp.NewProblem(dist, clusters)
	Expect(err).NotTo(HaveOccurred())

	return p
}

var _ = Describe("Runner", func() {
	var (
		ctx   context.Context
		clock *clocktesting.FakeClock
	)

	BeforeEach(func() {
		ctx = context.Background()
		clock = clocktesting.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	})

	Describe("Solve", func() {
		It("reaches the optimum of the three-cluster instance with the default recipe", func() {
			rn := runner.New[int64](runner.WithClock(clock), runner.WithLogger(testr.NewWithInterface(GinkgoT(), testr.Options{Verbosity: 2})))

			out, err := rn.Solve(ctx, threeClusters(), config.DefaultRecipe(), 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Solution.Weight()).To(Equal(int64(7)))
			Expect(out.Solution.Tour()).To(ContainElement(1))
			Expect(out.Elapsed).To(BeZero(), "the fake clock does not advance")
		})

		It("is deterministic for a seed", func() {
			recipe := config.Recipe{
				Kind:        config.KindMultistart,
				Termination: config.TerminationSpec{Iterations: 4},
				Inner: &config.Recipe{
					Kind: config.KindCycle,
					Steps: []config.Recipe{
						{Kind: config.KindLocal, Neighborhood: config.NeighborhoodTwoOpt},
						{Kind: config.KindLocal, Neighborhood: config.NeighborhoodInserts},
						{Kind: config.KindClusterOpt},
					},
				},
			}
			p := ring(9)
			a, err := runner.New[float64]().Solve(ctx, p, recipe, 3)
			Expect(err).NotTo(HaveOccurred())
			b, err := runner.New[float64]().Solve(ctx, p, recipe, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Solution.Equal(b.Solution)).To(BeTrue())
		})

		It("runs a bounded tabu search over a ring", func() {
			recipe := config.Recipe{
				Name:         "tabu-swap",
				Kind:         config.KindTabu,
				Neighborhood: config.NeighborhoodSwap,
				TabuLength:   5,
				Termination:  config.TerminationSpec{Iterations: 40},
			}
			p := ring(6)
			out, err := runner.New[float64]().Solve(ctx, p, recipe, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Solution.Validate(p)).To(Succeed())
			Expect(out.Solution.Weight()).To(BeNumerically("<=", 60))
		})

		It("gives parallel trials the same answer for any worker count", func() {
			recipe := func(workers int) config.Recipe {
				return config.Recipe{
					Kind:    config.KindParallel,
					Trials:  6,
					Workers: workers,
					Inner: &config.Recipe{
						Kind:  config.KindChain,
						Steps: []config.Recipe{{Kind: config.KindLocal, Neighborhood: config.NeighborhoodTwoOpt}, {Kind: config.KindClusterOpt}},
					},
				}
			}
			p := ring(8)
			one, err := runner.New[float64]().Solve(ctx, p, recipe(1), 5)
			Expect(err).NotTo(HaveOccurred())
			many, err := runner.New[float64]().Solve(ctx, p, recipe(0), 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(one.Solution.Equal(many.Solution)).To(BeTrue())
		})

		It("rejects invalid recipes", func() {
			_, err := runner.New[int64]().Solve(ctx, threeClusters(), config.Recipe{Kind: "annealing"}, 1)
			Expect(err).To(MatchError(config.ErrUnknownStrategy))

			_, err = runner.New[int64]().Solve(ctx, threeClusters(), config.Recipe{Kind: config.KindLocal, Neighborhood: "cluster"}, 1)
			Expect(err).To(MatchError(config.ErrUnknownNeighborhood))
		})

		It("honours a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := runner.New[int64]().Solve(cctx, threeClusters(), config.DefaultRecipe(), 1)
			Expect(err).To(MatchError(context.Canceled))
		})

		It("stops a timeout-bounded tabu search once the clock passes the deadline", func() {
			var events int
			obs := search.ObserverFunc(func(search.Event) {
				events++
				clock.Step(time.Second)
			})
			recipe := config.Recipe{
				Kind:         config.KindTabu,
				Neighborhood: config.NeighborhoodTwoOpt,
				Termination:  config.TerminationSpec{Timeout: 3 * time.Second},
			}
			_, err := runner.New[float64](runner.WithClock(clock), runner.WithObserver(obs)).Solve(ctx, ring(7), recipe, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal(4), "deadline is exceeded after the fourth second")
		})
	})

	Describe("Bench", func() {
		recipes := []config.Recipe{
			{Name: "ls-2opt", Kind: config.KindLocal, Neighborhood: config.NeighborhoodTwoOpt},
			{Name: "ls-swap", Kind: config.KindLocal, Neighborhood: config.NeighborhoodSwap},
			{Name: "tabu-swap", Kind: config.KindTabu, Neighborhood: config.NeighborhoodSwap, Termination: config.TerminationSpec{Iterations: 5}},
		}

		It("streams every run to the sink and summarizes per recipe", func() {
			var buf bytes.Buffer
			reg := prometheus.NewRegistry()
			rn := runner.New[int64](
				runner.WithClock(clock),
				runner.WithSink(results.NewCSVSink(&buf)),
				runner.WithCollector(metrics.New(reg)),
			)

			sums, err := rn.Bench(ctx, threeClusters(), recipes, 4, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(sums).To(HaveLen(3))
			for i, s := range sums {
				Expect(s.Recipe).To(Equal(recipes[i].Name))
				Expect(s.Runs).To(Equal(4))
				Expect(s.Best).To(BeNumerically("<=", s.Mean))
				Expect(s.Mean).To(BeNumerically("<=", s.Worst))
				Expect(s.Best).To(BeNumerically(">=", 7))
			}

			rows, err := csv.NewReader(&buf).ReadAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1 + 12))
			Expect(rows[1][0]).To(Equal("ls-2opt"))
			Expect(rows[2][0]).To(Equal("ls-swap"), "rounds interleave recipes")

			n, err := testutil.GatherAndCount(reg, "clusterpath_run_duration_seconds")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
		})

		It("repeats identically for the same seed", func() {
			a, err := runner.New[int64](runner.WithClock(clock)).Bench(ctx, threeClusters(), recipes, 3, 9)
			Expect(err).NotTo(HaveOccurred())
			b, err := runner.New[int64](runner.WithClock(clock)).Bench(ctx, threeClusters(), recipes, 3, 9)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("rejects a non-positive repeat count", func() {
			_, err := runner.New[int64]().Bench(ctx, threeClusters(), recipes, 0, 1)
			Expect(err).To(MatchError(config.ErrInvalidConfig))
		})
	})
})
