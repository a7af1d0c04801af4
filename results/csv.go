package results

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{"recipe", "run", "seed", "weight", "elapsed_ms", "tour"}

// CSVSink writes one row per record, preceded by a header row.
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
	header bool
	closed bool
}

// NewCSVSink writes to w. If w is an io.Closer it is closed by Close.
func NewCSVSink(w io.Writer) *CSVSink {
	s := &CSVSink{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}

	return s
}

// Write implements Sink. Rows are flushed immediately.
func (s *CSVSink) Write(_ context.Context, r Record) error {
	if s.closed {
		return ErrClosed
	}
	if !s.header {
		if err := s.w.Write(csvHeader); err != nil {
			return fmt.Errorf("results: write csv header: %w", err)
		}
		s.header = true
	}

	row := []string{
		r.Recipe,
		strconv.Itoa(r.Run),
		strconv.FormatInt(r.Seed, 10),
		strconv.FormatFloat(r.Weight, 'g', -1, 64),
		strconv.FormatInt(r.Elapsed.Milliseconds(), 10),
		formatTour(r.Tour),
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("results: write csv row: %w", err)
	}
	s.w.Flush()

	return s.w.Error()
}

// Close flushes pending output and closes the underlying writer if it is closable.
func (s *CSVSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}

	return nil
}

// formatTour renders 0-based vertices as a space-separated 1-based list.
func formatTour(tour []int) string {
	var b strings.Builder
	for i, v := range tour {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v + 1))
	}

	return b.String()
}

func parseTour(s string) ([]int, error) {
	fields := strings.Fields(s)
	tour := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("results: tour entry %q: %w", f, err)
		}
		tour[i] = v - 1
	}

	return tour, nil
}
