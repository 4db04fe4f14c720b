// Package config loads analysis settings from a YAML (or JSON/TOML) file,
// SPLITMATCH_* environment variables and command line flags, in increasing
// order of precedence.
//
// A minimal file:
//
//	lineages: [A, B, C]
//	queries: [Q1]
//	options:
//	  treeset: trees.nwk.zst
//	  output: matches.csv
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hupe1980/splitmatch/codec"
	"github.com/hupe1980/splitmatch/report"
)

// ErrInvalid is returned for settings that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Options are the run settings under the "options" key.
type Options struct {
	// location of the line-delimited Newick tree set
	Treeset string `mapstructure:"treeset"`

	// location of the report
	Output string `mapstructure:"output"`

	// csv or json
	Format string `mapstructure:"format"`

	// JSON implementation, see codec.ByName
	Codec string `mapstructure:"codec"`

	// parallel parsers and accumulators
	Workers int `mapstructure:"workers"`

	// limit for bipartition buffers, e.g. "2GiB"; empty means unlimited
	MemoryLimit string `mapstructure:"memory_limit"`

	// read/write throughput limit per second, e.g. "64MB"; empty means unlimited
	IOLimit string `mapstructure:"io_limit"`
}

// Config is the root settings struct.
type Config struct {
	Lineages []string `mapstructure:"lineages"`
	Queries  []string `mapstructure:"queries"`
	Options  Options  `mapstructure:"options"`
}

// flag name -> settings key
var flagKeys = map[string]string{
	"treeset":      "options.treeset",
	"output":       "options.output",
	"format":       "options.format",
	"codec":        "options.codec",
	"workers":      "options.workers",
	"memory-limit": "options.memory_limit",
	"io-limit":     "options.io_limit",
}

// Load reads the file at path (optional) and merges environment variables
// and the flags in fs (optional).
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("lineages", []string{})
	v.SetDefault("queries", []string{})
	v.SetDefault("options.treeset", "")
	v.SetDefault("options.output", "")
	v.SetDefault("options.format", string(report.CSV))
	v.SetDefault("options.codec", codec.Default.Name())
	v.SetDefault("options.workers", 1)
	v.SetDefault("options.memory_limit", "")
	v.SetDefault("options.io_limit", "")

	v.SetEnvPrefix("SPLITMATCH")
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
					return nil, fmt.Errorf("config: bind --%s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unable to decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings needed for a run.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Lineages) == 0 {
		errs = append(errs, fmt.Errorf("%w: no lineages", ErrInvalid))
	}
	if len(c.Queries) == 0 {
		errs = append(errs, fmt.Errorf("%w: no queries", ErrInvalid))
	}
	if c.Options.Treeset == "" {
		errs = append(errs, fmt.Errorf("%w: options.treeset is required", ErrInvalid))
	}
	if c.Options.Output == "" {
		errs = append(errs, fmt.Errorf("%w: options.output is required", ErrInvalid))
	}
	if _, err := report.ParseFormat(c.Options.Format); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if _, err := codec.ByName(c.Options.Codec); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if c.Options.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: options.workers must be positive, got %d", ErrInvalid, c.Options.Workers))
	}
	if _, err := c.MemoryLimitBytes(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.IOLimitBytes(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ReportFormat returns the parsed output format.
func (c *Config) ReportFormat() report.Format {
	f, _ := report.ParseFormat(c.Options.Format)
	return f
}

// MemoryLimitBytes parses options.memory_limit; 0 means unlimited.
func (c *Config) MemoryLimitBytes() (int64, error) {
	return parseBytes("options.memory_limit", c.Options.MemoryLimit)
}

// IOLimitBytes parses options.io_limit; 0 means unlimited.
func (c *Config) IOLimitBytes() (int64, error) {
	return parseBytes("options.io_limit", c.Options.IOLimit)
}

func parseBytes(key, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("%w: %s: %q is too large", ErrInvalid, key, s)
	}
	return int64(n), nil
}
