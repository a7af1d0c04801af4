// Package config loads the run configuration.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML file,
// CLUSTERPATH_* environment variables (nested keys joined by "_", e.g.
// CLUSTERPATH_BENCH_REPEATS), and command-line flags registered with AddFlags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Sentinel errors.
var (
	ErrUnknownStrategy     = errors.New("config: unknown strategy kind")
	ErrUnknownNeighborhood = errors.New("config: unknown neighborhood")
	ErrInvalidRecipe       = errors.New("config: invalid recipe")
	ErrUnknownCost         = errors.New("config: unknown cost type")
	ErrInvalidConfig       = errors.New("config: invalid configuration")
)

// Cost types.
const (
	CostInt   = "int"
	CostFloat = "float"
)

// Output formats.
const (
	OutputYAML = "yaml"
	OutputCSV  = "csv"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CLUSTERPATH"

// Config is the full run configuration.
type Config struct {
	Seed        int64  `mapstructure:"seed"`
	Cost        string `mapstructure:"cost"`
	LogLevel    string `mapstructure:"logLevel"`
	Development bool   `mapstructure:"development"`
	MetricsAddr string `mapstructure:"metricsAddr"`
	Output      string `mapstructure:"output"`
	Database    string `mapstructure:"database"`
	Strategy    Recipe `mapstructure:"strategy"`
	Bench       Bench  `mapstructure:"bench"`
}

// Bench configures repeated runs.
type Bench struct {
	Repeats int      `mapstructure:"repeats"`
	Recipes []Recipe `mapstructure:"recipes"`
}

// flag name → config key
var flagKeys = map[string]string{
	"seed":         "seed",
	"cost":         "cost",
	"log-level":    "logLevel",
	"development":  "development",
	"metrics-addr": "metricsAddr",
	"output":       "output",
	"database":     "database",
	"repeats":      "bench.repeats",
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.Int64("seed", 1, "random seed (0 is treated as 1)")
	fs.String("cost", CostInt, "cost type: int or float")
	fs.String("log-level", "info", "log level: error, info, debug or trace")
	fs.Bool("development", false, "human-readable console logs")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address (empty disables)")
	fs.String("output", OutputYAML, "result format: yaml or csv")
	fs.String("database", "", "SQLite file receiving bench runs (empty disables)")
	fs.Int("repeats", 10, "bench runs per recipe")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed", 1)
	v.SetDefault("cost", CostInt)
	v.SetDefault("logLevel", "info")
	v.SetDefault("development", false)
	v.SetDefault("metricsAddr", "")
	v.SetDefault("output", OutputYAML)
	v.SetDefault("database", "")
	v.SetDefault("bench.repeats", 10)
}

// Load reads the configuration. path may be empty; fs may be nil. Only flags
// changed on the command line override the other sources.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Strategy.Kind == "" {
		cfg.Strategy = DefaultRecipe()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks scalar settings and every recipe.
func (c *Config) Validate() error {
	switch c.Cost {
	case CostInt, CostFloat:
	default:
		return fmt.Errorf("cost %q: %w", c.Cost, ErrUnknownCost)
	}
	switch c.Output {
	case OutputYAML, OutputCSV:
	default:
		return fmt.Errorf("output %q must be yaml or csv: %w", c.Output, ErrInvalidConfig)
	}
	if c.Bench.Repeats < 1 {
		return fmt.Errorf("bench.repeats %d < 1: %w", c.Bench.Repeats, ErrInvalidConfig)
	}

	if err := c.Strategy.Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	seen := make(map[string]bool, len(c.Bench.Recipes))
	for i := range c.Bench.Recipes {
		r := &c.Bench.Recipes[i]
		if r.Name == "" {
			return fmt.Errorf("bench.recipes[%d]: missing name: %w", i, ErrInvalidRecipe)
		}
		if seen[r.Name] {
			return fmt.Errorf("bench.recipes[%d]: duplicate name %q: %w", i, r.Name, ErrInvalidRecipe)
		}
		seen[r.Name] = true
		if err := r.Validate(); err != nil {
			return fmt.Errorf("bench.recipes[%d]: %w", i, err)
		}
	}

	return nil
}
