// Command clusterpath solves Generalized TSP instances with composed
// metaheuristics.
//
//	clusterpath solve instance.txt [--config run.yaml] [--seed 7]
//	clusterpath bench instance.txt --repeats 20 --database runs.db
//	clusterpath check instance.txt tour.txt
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
