package runner

import (
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/clusterpath/results"
)

// Summary aggregates the runs of one recipe.
type Summary struct {
	Recipe string
	Runs   int
	Best   float64 // lowest weight
	Worst  float64 // highest weight
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for a single run
	Total  time.Duration
}

// Summarize groups records by recipe, keeping the order in which recipes
// first appear.
func Summarize(records []results.Record) []Summary {
	groups := lo.GroupBy(records, func(r results.Record) string { return r.Recipe })
	names := lo.Uniq(lo.Map(records, func(r results.Record, _ int) string { return r.Recipe }))

	return lo.Map(names, func(name string, _ int) Summary {
		runs := groups[name]
		weights := lo.Map(runs, func(r results.Record, _ int) float64 { return r.Weight })

		s := Summary{
			Recipe: name,
			Runs:   len(runs),
			Best:   lo.Min(weights),
			Worst:  lo.Max(weights),
			Total:  lo.SumBy(runs, func(r results.Record) time.Duration { return r.Elapsed }),
		}
		if len(weights) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(weights, nil)
		} else {
			s.Mean = weights[0]
		}

		return s
	})
}
