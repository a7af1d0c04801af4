package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/clusterpath/config"
	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/results"
	"github.com/katalvlaran/clusterpath/runner"
)

func newBenchCommand(setup func(*cobra.Command) (*env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "bench INSTANCE",
		Short: "Repeat the configured bench recipes and summarize tour weights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			return withCost(e.cfg, args[0],
				func(p *gtsp.Problem[int64]) error { return bench(cmd.Context(), e, p, cmd.OutOrStdout()) },
				func(p *gtsp.Problem[float64]) error { return bench(cmd.Context(), e, p, cmd.OutOrStdout()) },
			)
		},
	}
}

func bench[C gtsp.Cost](ctx context.Context, e *env, p *gtsp.Problem[C], out io.Writer) error {
	recipes := e.cfg.Bench.Recipes
	if len(recipes) == 0 {
		recipes = config.DefaultBenchRecipes()
	}

	var sink results.Sink = results.Discard
	switch {
	case e.cfg.Database != "":
		st, err := results.Open(e.cfg.Database)
		if err != nil {
			return err
		}
		sink = st
	case e.cfg.Output == config.OutputCSV:
		sink = results.NewCSVSink(out)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			e.log.Error(err, "closing result sink")
		}
	}()

	rn := runner.New[C](
		runner.WithLogger(e.log),
		runner.WithCollector(e.collector),
		runner.WithSink(sink),
	)
	sums, err := rn.Bench(ctx, p, recipes, e.cfg.Bench.Repeats, e.cfg.Seed)
	if err != nil {
		return err
	}
	if e.cfg.Output == config.OutputCSV && e.cfg.Database == "" {
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECIPE\tRUNS\tBEST\tMEAN\tSTDDEV\tWORST\tTIME")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%d\t%g\t%.3f\t%.3f\t%g\t%s\n", s.Recipe, s.Runs, s.Best, s.Mean, s.StdDev, s.Worst, s.Total)
	}

	return tw.Flush()
}
