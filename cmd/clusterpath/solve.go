package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/clusterpath/config"
	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/loader"
	"github.com/katalvlaran/clusterpath/results"
	"github.com/katalvlaran/clusterpath/runner"
)

func newSolveCommand(setup func(*cobra.Command) (*env, error)) *cobra.Command {
	var tourPath string

	cmd := &cobra.Command{
		Use:   "solve INSTANCE",
		Short: "Run the configured strategy once and report the best tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			return withCost(e.cfg, args[0],
				func(p *gtsp.Problem[int64]) error {
					return solve(cmd.Context(), e, args[0], tourPath, p, cmd.OutOrStdout())
				},
				func(p *gtsp.Problem[float64]) error {
					return solve(cmd.Context(), e, args[0], tourPath, p, cmd.OutOrStdout())
				},
			)
		},
	}
	cmd.Flags().StringVar(&tourPath, "write-tour", "", "also write the tour in the solution text format to this file")

	return cmd
}

func solve[C gtsp.Cost](ctx context.Context, e *env, instance, tourPath string, p *gtsp.Problem[C], out io.Writer) error {
	var sink results.Sink = results.Discard
	if e.cfg.Output == config.OutputCSV {
		sink = results.NewCSVSink(out)
	}

	rn := runner.New[C](
		runner.WithLogger(e.log),
		runner.WithCollector(e.collector),
		runner.WithSink(sink),
	)
	res, err := rn.Solve(ctx, p, e.cfg.Strategy, e.cfg.Seed)
	if err != nil {
		return err
	}
	if err = sink.Close(); err != nil {
		return err
	}

	if tourPath != "" {
		f, err := os.Create(tourPath)
		if err != nil {
			return err
		}
		if err = loader.WriteSolution(f, res.Solution); err != nil {
			f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return err
		}
	}

	if e.cfg.Output == config.OutputYAML {
		rec := results.Record{
			Recipe:  e.cfg.Strategy.Name,
			Seed:    e.cfg.Seed,
			Weight:  float64(res.Solution.Weight()),
			Elapsed: res.Elapsed,
			Tour:    res.Solution.Tour(),
		}
		if rec.Recipe == "" {
			rec.Recipe = e.cfg.Strategy.Kind
		}
		return results.WriteReport(out, results.NewReport(instance, rec))
	}

	return nil
}
