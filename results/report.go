package results

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Report summarizes one solve.
type Report struct {
	Instance string  `yaml:"instance"`
	Recipe   string  `yaml:"recipe"`
	Seed     int64   `yaml:"seed"`
	Weight   float64 `yaml:"weight"`
	Elapsed  string  `yaml:"elapsed"`
	Tour     []int   `yaml:"tour,flow"`
}

// NewReport builds a Report from a record; tour vertices become 1-based.
func NewReport(instance string, r Record) Report {
	tour := make([]int, len(r.Tour))
	for i, v := range r.Tour {
		tour[i] = v + 1
	}

	return Report{
		Instance: instance,
		Recipe:   r.Recipe,
		Seed:     r.Seed,
		Weight:   r.Weight,
		Elapsed:  r.Elapsed.String(),
		Tour:     tour,
	}
}

// WriteReport encodes rep as a YAML document.
func WriteReport(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("results: encode report: %w", err)
	}

	return enc.Close()
}

// ReadReport decodes a YAML report.
func ReadReport(r io.Reader) (Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("results: decode report: %w", err)
	}

	return rep, nil
}
