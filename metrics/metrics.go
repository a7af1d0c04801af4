// Package metrics exports search progress as Prometheus metrics.
//
// A Collector is a search.Observer: attach it to strategies with
// search.WithObserver and it counts iterations and improvements per strategy
// name and tracks the best score reported. Runs timed by the runner are
// recorded in a duration histogram labelled by recipe.
//
// Collector methods are goroutine-safe, so one Collector may observe the
// trials of a ParallelMultistart.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/clusterpath/search"
)

const namespace = "clusterpath"

// Collector holds the search metrics registered on one Registerer.
type Collector struct {
	iterations   *prometheus.CounterVec
	improvements *prometheus.CounterVec
	bestScore    *prometheus.GaugeVec
	runDuration  *prometheus.HistogramVec
	runWeight    *prometheus.GaugeVec
}

// New registers the collector metrics on reg. A nil reg registers nowhere,
// which is convenient in tests that only read values back.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)

	return &Collector{
		iterations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_iterations_total",
			Help:      "Completed strategy iterations by strategy name",
		}, []string{"strategy"}),
		improvements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_improvements_total",
			Help:      "Iterations that raised the best score, by strategy name",
		}, []string{"strategy"}),
		bestScore: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "strategy_best_score",
			Help:      "Best score last reported by a strategy (negated tour weight)",
		}, []string{"strategy"}),
		runDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one solver run by recipe",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"recipe"}),
		runWeight: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_weight",
			Help:      "Tour weight of the last finished run by recipe",
		}, []string{"recipe"}),
	}
}

// Observe implements search.Observer.
func (c *Collector) Observe(e search.Event) {
	c.iterations.WithLabelValues(e.Strategy).Inc()
	if e.Improved {
		c.improvements.WithLabelValues(e.Strategy).Inc()
	}
	c.bestScore.WithLabelValues(e.Strategy).Set(e.Score)
}

// ObserveRun records one finished run of recipe.
func (c *Collector) ObserveRun(recipe string, elapsed time.Duration, weight float64) {
	c.runDuration.WithLabelValues(recipe).Observe(elapsed.Seconds())
	c.runWeight.WithLabelValues(recipe).Set(weight)
}

// Iterations returns the iteration counter of strategy.
func (c *Collector) Iterations(strategy string) prometheus.Counter {
	return c.iterations.WithLabelValues(strategy)
}

// BestScore returns the best-score gauge of strategy.
func (c *Collector) BestScore(strategy string) prometheus.Gauge {
	return c.bestScore.WithLabelValues(strategy)
}

var _ search.Observer = (*Collector)(nil)
