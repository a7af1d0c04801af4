// Package results stores and reports solver runs.
//
// A Record describes one finished run. Records are streamed to a Sink: the CSV
// sink mirrors the column layout of the benchmark tables, the SQLite store
// keeps runs across invocations and can read them back. WriteReport renders a
// single solve as YAML.
package results

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned when writing to a closed sink.
var ErrClosed = errors.New("results: sink closed")

// Record is one finished solver run.
type Record struct {
	Recipe  string
	Run     int
	Seed    int64
	Weight  float64
	Elapsed time.Duration
	Tour    []int
}

// Sink receives records. Implementations are not required to be goroutine-safe.
type Sink interface {
	Write(ctx context.Context, r Record) error
	Close() error
}

// Discard is a Sink that drops every record.
var Discard Sink = discard{}

type discard struct{}

func (discard) Write(context.Context, Record) error { return nil }
func (discard) Close() error                        { return nil }
