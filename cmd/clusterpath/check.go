package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/loader"
)

func newCheckCommand(setup func(*cobra.Command) (*env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "check INSTANCE SOLUTION",
		Short: "Validate a tour file against an instance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			return withCost(e.cfg, args[0],
				func(p *gtsp.Problem[int64]) error {
					s, err := loader.LoadSolution(args[1], p)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d clusters, weight %d\n", s.Len(), s.Weight())
					return err
				},
				func(p *gtsp.Problem[float64]) error {
					s, err := loader.LoadSolution(args[1], p)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d clusters, weight %g\n", s.Len(), s.Weight())
					return err
				},
			)
		},
	}
}
