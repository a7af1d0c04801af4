// SPDX-License-Identifier: MIT
// Package loader reads and writes the line-oriented text formats of GTSP
// instances and tours.
//
// Instance format (vertices are 1-based on disk):
//
//	N: <vertices>
//	M: <clusters>
//	Symmetric: <true|false>
//	Triangle: <true|false>
//	<size> <v1> ... <vsize>      (M lines, one per cluster)
//	<c11> <c12> ... <c1N>        (N lines, one matrix row each)
//
// Solution format:
//
//	<tour length>
//	<weight>
//	<vertex>                     (one 1-based vertex per line)
//
// Blank lines are ignored. Every parse failure wraps ErrMalformed and names the
// offending line.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/clusterpath/gtsp"
)

// ErrMalformed is returned for input that does not follow the text format.
var ErrMalformed = errors.New("loader: malformed input")

// weightTolerance is the relative slack accepted between a declared and a
// recomputed float weight.
const weightTolerance = 1e-9

// lineReader yields non-blank trimmed lines and tracks the line number.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	return &lineReader{sc: sc}
}

func (lr *lineReader) next(what string) (string, error) {
	for lr.sc.Scan() {
		lr.line++
		if s := strings.TrimSpace(lr.sc.Text()); s != "" {
			return s, nil
		}
	}
	if err := lr.sc.Err(); err != nil {
		return "", fmt.Errorf("loader: read %s: %w", what, err)
	}

	return "", fmt.Errorf("line %d: missing %s: %w", lr.line+1, what, ErrMalformed)
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", lr.line, fmt.Sprintf(format, args...), ErrMalformed)
}

// header reads "<key>: <value>".
func (lr *lineReader) header(key string) (string, error) {
	s, err := lr.next(key)
	if err != nil {
		return "", err
	}
	v, ok := strings.CutPrefix(s, key+":")
	if !ok {
		return "", lr.errorf("want %q header, got %q", key, s)
	}

	return strings.TrimSpace(v), nil
}

func (lr *lineReader) headerInt(key string) (int, error) {
	v, err := lr.header(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, lr.errorf("%s: invalid count %q", key, v)
	}

	return n, nil
}

func (lr *lineReader) headerBool(key string) (bool, error) {
	v, err := lr.header(key)
	if err != nil {
		return false, err
	}
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	return false, lr.errorf("%s: invalid boolean %q", key, v)
}

// vertex parses a 1-based vertex index into 0-based form.
func (lr *lineReader) vertex(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, lr.errorf("invalid vertex %q", s)
	}

	return v - 1, nil
}

// isFloat reports whether C is a floating-point type.
func isFloat[C gtsp.Cost]() bool {
	return C(1)/C(2) != 0
}

// parseCost parses s as an integer or a float depending on C.
func parseCost[C gtsp.Cost](s string) (C, error) {
	if isFloat[C]() {
		f, err := strconv.ParseFloat(s, 64)
		return C(f), err
	}
	i, err := strconv.ParseInt(s, 10, 64)

	return C(i), err
}

// ReadProblem parses an instance and validates it with gtsp.NewProblem.
//
// Errors: ErrMalformed, or any gtsp.NewProblem sentinel.
func ReadProblem[C gtsp.Cost](r io.Reader) (*gtsp.Problem[C], error) {
	lr := newLineReader(r)

	n, err := lr.headerInt("N")
	if err != nil {
		return nil, err
	}
	m, err := lr.headerInt("M")
	if err != nil {
		return nil, err
	}
	symmetric, err := lr.headerBool("Symmetric")
	if err != nil {
		return nil, err
	}
	triangle, err := lr.headerBool("Triangle")
	if err != nil {
		return nil, err
	}

	var (
		clusters = make([][]int, m)
		fields   []string
		line     string
		i, k     int
	)
	for i = 0; i < m; i++ {
		if line, err = lr.next(fmt.Sprintf("cluster %d", i+1)); err != nil {
			return nil, err
		}
		fields = strings.Fields(line)
		size, convErr := strconv.Atoi(fields[0])
		if convErr != nil || size < 0 {
			return nil, lr.errorf("cluster %d: invalid size %q", i+1, fields[0])
		}
		if len(fields)-1 != size {
			return nil, lr.errorf("cluster %d: declared %d vertices, found %d", i+1, size, len(fields)-1)
		}
		clusters[i] = make([]int, size)
		for k = 0; k < size; k++ {
			if clusters[i][k], err = lr.vertex(fields[k+1]); err != nil {
				return nil, err
			}
		}
	}

	dist := make([][]C, n)
	for i = 0; i < n; i++ {
		if line, err = lr.next(fmt.Sprintf("matrix row %d", i+1)); err != nil {
			return nil, err
		}
		fields = strings.Fields(line)
		if len(fields) != n {
			return nil, lr.errorf("matrix row %d: %d entries, want %d", i+1, len(fields), n)
		}
		dist[i] = make([]C, n)
		for k = range fields {
			if dist[i][k], err = parseCost[C](fields[k]); err != nil {
				return nil, lr.errorf("matrix row %d: invalid cost %q", i+1, fields[k])
			}
		}
	}

	p, err := gtsp.NewProblem(dist, clusters, gtsp.WithSymmetric(symmetric), gtsp.WithTriangle(triangle))
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	return p, nil
}

// ReadSolution parses a tour for p. The tour must be valid for p and the
// declared weight must match the recomputed one (within a relative 1e-9 for
// float costs).
//
// Errors: ErrMalformed, gtsp.ErrInvalidTour, gtsp.ErrWeightMismatch.
func ReadSolution[C gtsp.Cost](r io.Reader, p *gtsp.Problem[C]) (gtsp.Solution[C], error) {
	lr := newLineReader(r)

	line, err := lr.next("tour length")
	if err != nil {
		return gtsp.Solution[C]{}, err
	}
	size, err := strconv.Atoi(line)
	if err != nil || size < 0 {
		return gtsp.Solution[C]{}, lr.errorf("invalid tour length %q", line)
	}
	if line, err = lr.next("weight"); err != nil {
		return gtsp.Solution[C]{}, err
	}
	declared, err := parseCost[C](line)
	if err != nil {
		return gtsp.Solution[C]{}, lr.errorf("invalid weight %q", line)
	}

	tour := make([]int, size)
	for i := range tour {
		if line, err = lr.next(fmt.Sprintf("tour vertex %d", i+1)); err != nil {
			return gtsp.Solution[C]{}, err
		}
		if tour[i], err = lr.vertex(line); err != nil {
			return gtsp.Solution[C]{}, err
		}
	}

	s, err := p.NewSolution(tour)
	if err != nil {
		return gtsp.Solution[C]{}, fmt.Errorf("loader: %w", err)
	}
	if !sameWeight(declared, s.Weight()) {
		return gtsp.Solution[C]{}, fmt.Errorf("loader: declared %v, recomputed %v: %w", declared, s.Weight(), gtsp.ErrWeightMismatch)
	}

	return s, nil
}

func sameWeight[C gtsp.Cost](a, b C) bool {
	if !isFloat[C]() {
		return a == b
	}
	fa, fb := float64(a), float64(b)

	return math.Abs(fa-fb) <= weightTolerance*math.Max(1, math.Max(math.Abs(fa), math.Abs(fb)))
}

// WriteProblem writes p in the instance format.
func WriteProblem[C gtsp.Cost](w io.Writer, p *gtsp.Problem[C]) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "N: %d\nM: %d\nSymmetric: %t\nTriangle: %t\n",
		p.NumVertices(), p.NumClusters(), p.IsSymmetric(), p.HasTriangleInequality())

	var u, v int
	for i := 0; i < p.NumClusters(); i++ {
		c := p.Cluster(i)
		fmt.Fprintf(bw, "%d", len(c))
		for _, v = range c {
			fmt.Fprintf(bw, " %d", v+1)
		}
		bw.WriteByte('\n')
	}
	for u = 0; u < p.NumVertices(); u++ {
		for v = 0; v < p.NumVertices(); v++ {
			if v > 0 {
				bw.WriteByte(' ')
			}
			if u != v {
				bw.WriteString(formatCost(p.Dist(u, v)))
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// WriteSolution writes s in the solution format.
func WriteSolution[C gtsp.Cost](w io.Writer, s gtsp.Solution[C]) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", s.Len(), formatCost(s.Weight()))
	for i := 0; i < s.Len(); i++ {
		fmt.Fprintf(bw, "%d\n", s.At(i)+1)
	}

	return bw.Flush()
}

func formatCost[C gtsp.Cost](c C) string {
	if isFloat[C]() {
		return strconv.FormatFloat(float64(c), 'g', -1, 64)
	}

	return strconv.FormatInt(int64(c), 10)
}

// LoadProblem opens path and reads an instance from it.
func LoadProblem[C gtsp.Cost](path string) (*gtsp.Problem[C], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	p, err := ReadProblem[C](f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// LoadSolution opens path and reads a tour for p from it.
func LoadSolution[C gtsp.Cost](path string, p *gtsp.Problem[C]) (gtsp.Solution[C], error) {
	f, err := os.Open(path)
	if err != nil {
		return gtsp.Solution[C]{}, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	s, err := ReadSolution(f, p)
	if err != nil {
		return gtsp.Solution[C]{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}
