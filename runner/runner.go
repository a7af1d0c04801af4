package runner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/utils/clock"

	"github.com/katalvlaran/clusterpath/config"
	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/internal/logging"
	"github.com/katalvlaran/clusterpath/metrics"
	"github.com/katalvlaran/clusterpath/results"
	"github.com/katalvlaran/clusterpath/search"
)

// Option configures a Runner.
type Option func(*options)

type options struct {
	log       logr.Logger
	observer  search.Observer
	clock     clock.Clock
	collector *metrics.Collector
	sink      results.Sink
}

// WithLogger sets the logger handed to every strategy.
func WithLogger(l logr.Logger) Option { return func(o *options) { o.log = l } }

// WithObserver sets the strategy event observer. A metrics collector given
// with WithCollector is observed as well.
func WithObserver(obs search.Observer) Option { return func(o *options) { o.observer = obs } }

// WithClock sets the clock used for timeouts and run timing.
func WithClock(c clock.Clock) Option { return func(o *options) { o.clock = c } }

// WithCollector records strategy events and run timings as metrics.
func WithCollector(c *metrics.Collector) Option { return func(o *options) { o.collector = c } }

// WithSink receives one record per finished run.
func WithSink(s results.Sink) Option { return func(o *options) { o.sink = s } }

// Runner executes recipes against GTSP instances with cost type C.
type Runner[C gtsp.Cost] struct {
	opts    options
	builder builder[C]
}

// New returns a Runner.
func New[C gtsp.Cost](opts ...Option) *Runner[C] {
	o := options{
		log:   logr.Discard(),
		clock: clock.RealClock{},
		sink:  results.Discard,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var observers []search.Observer
	if o.observer != nil {
		observers = append(observers, o.observer)
	}
	if o.collector != nil {
		observers = append(observers, o.collector)
	}

	return &Runner[C]{
		opts: o,
		builder: builder[C]{
			log:      o.log,
			observer: fanOut(observers),
			clock:    o.clock,
		},
	}
}

// fanOut combines observers; nil when there are none.
func fanOut(obs []search.Observer) search.Observer {
	switch len(obs) {
	case 0:
		return nil
	case 1:
		return obs[0]
	}

	return search.ObserverFunc(func(e search.Event) {
		for _, o := range obs {
			o.Observe(e)
		}
	})
}

// Outcome is the result of one run.
type Outcome[C gtsp.Cost] struct {
	Solution gtsp.Solution[C]
	Elapsed  time.Duration
}

// Solve builds r and runs it once on p with a random stream seeded by seed.
// The run is recorded in the sink under the recipe name.
func (rn *Runner[C]) Solve(ctx context.Context, p *gtsp.Problem[C], r config.Recipe, seed int64) (Outcome[C], error) {
	mk, err := rn.builder.compile(r)
	if err != nil {
		return Outcome[C]{}, err
	}

	return rn.run(ctx, p, mk, recipeName(r), 0, seed, search.NewRNG(seed))
}

func (rn *Runner[C]) run(
	ctx context.Context,
	p *gtsp.Problem[C],
	mk metaMaker[C],
	name string,
	run int,
	seed int64,
	rng *rand.Rand,
) (Outcome[C], error) {
	if err := ctx.Err(); err != nil {
		return Outcome[C]{}, err
	}

	start := rn.opts.clock.Now()
	sol := mk().Run(p, rng)
	elapsed := rn.opts.clock.Since(start)

	rn.opts.log.V(logging.DEBUG).Info("run finished", "recipe", name, "run", run, "weight", sol.Weight(), "elapsed", elapsed)
	if rn.opts.collector != nil {
		rn.opts.collector.ObserveRun(name, elapsed, float64(sol.Weight()))
	}

	rec := results.Record{
		Recipe:  name,
		Run:     run,
		Seed:    seed,
		Weight:  float64(sol.Weight()),
		Elapsed: elapsed,
		Tour:    sol.Tour(),
	}
	if err := rn.opts.sink.Write(ctx, rec); err != nil {
		return Outcome[C]{}, fmt.Errorf("runner: record %s run %d: %w", name, run, err)
	}

	return Outcome[C]{Solution: sol, Elapsed: elapsed}, nil
}

// Bench runs every recipe repeats times. All runs draw from one random stream
// seeded by seed, interleaved round by round: round k runs every recipe once,
// in order. It returns one Summary per recipe, in recipe order.
func (rn *Runner[C]) Bench(ctx context.Context, p *gtsp.Problem[C], recipes []config.Recipe, repeats int, seed int64) ([]Summary, error) {
	if repeats < 1 {
		return nil, fmt.Errorf("runner: repeats %d < 1: %w", repeats, config.ErrInvalidConfig)
	}

	makers := make([]metaMaker[C], len(recipes))
	for i, r := range recipes {
		mk, err := rn.builder.compile(r)
		if err != nil {
			return nil, fmt.Errorf("recipe %q: %w", recipeName(r), err)
		}
		makers[i] = mk
	}

	var (
		rng     = search.NewRNG(seed)
		records = make([]results.Record, 0, repeats*len(recipes))
	)
	for run := 0; run < repeats; run++ {
		for i, r := range recipes {
			name := recipeName(r)
			out, err := rn.run(ctx, p, makers[i], name, run, seed, rng)
			if err != nil {
				return nil, err
			}
			records = append(records, results.Record{Recipe: name, Run: run, Weight: float64(out.Solution.Weight()), Elapsed: out.Elapsed})
		}
	}
	summaries := Summarize(records)
	for _, s := range summaries {
		rn.opts.log.Info("bench summary", "recipe", s.Recipe, "runs", s.Runs, "best", s.Best, "mean", s.Mean, "stddev", s.StdDev)
	}

	return summaries, nil
}

func recipeName(r config.Recipe) string {
	if r.Name != "" {
		return r.Name
	}

	return r.Kind
}
