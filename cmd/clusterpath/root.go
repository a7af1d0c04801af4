package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/clusterpath/config"
	"github.com/katalvlaran/clusterpath/gtsp"
	"github.com/katalvlaran/clusterpath/internal/logging"
	"github.com/katalvlaran/clusterpath/loader"
	"github.com/katalvlaran/clusterpath/metrics"
)

// env is the state shared by subcommands after configuration is loaded.
type env struct {
	cfg       *config.Config
	log       logr.Logger
	collector *metrics.Collector
	shutdown  func(context.Context) error
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "clusterpath",
		Short:         "Metaheuristic solver for the Generalized Traveling Salesman Problem",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	config.AddFlags(root.PersistentFlags())

	setup := func(cmd *cobra.Command) (*env, error) {
		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return nil, err
		}
		log, err := logging.New(cfg.LogLevel, cfg.Development)
		if err != nil {
			return nil, err
		}
		e := &env{cfg: cfg, log: log, shutdown: func(context.Context) error { return nil }}
		if cfg.MetricsAddr != "" {
			e.collector, e.shutdown = serveMetrics(cfg.MetricsAddr, log)
		}

		return e, nil
	}

	root.AddCommand(newSolveCommand(setup), newBenchCommand(setup), newCheckCommand(setup))

	return root
}

// serveMetrics exposes a fresh registry on addr/metrics.
func serveMetrics(addr string, log logr.Logger) (*metrics.Collector, func(context.Context) error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c := metrics.New(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "metrics server stopped")
		}
	}()

	return c, srv.Shutdown
}

func (e *env) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.shutdown(ctx); err != nil {
		e.log.Error(err, "shutting down metrics server")
	}
}

// withCost loads the instance at path with the configured cost type and
// hands it to the matching callback.
func withCost(cfg *config.Config, path string,
	onInt func(*gtsp.Problem[int64]) error,
	onFloat func(*gtsp.Problem[float64]) error,
) error {
	switch cfg.Cost {
	case config.CostInt:
		p, err := loader.LoadProblem[int64](path)
		if err != nil {
			return err
		}
		return onInt(p)
	case config.CostFloat:
		p, err := loader.LoadProblem[float64](path)
		if err != nil {
			return err
		}
		return onFloat(p)
	}

	return fmt.Errorf("cost %q: %w", cfg.Cost, config.ErrUnknownCost)
}
