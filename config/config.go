// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the hiercluster tool and
// loads it from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hiercluster/cluster"
	"github.com/katalvlaran/hiercluster/distance"
)

// Sentinel errors.
var (
	// ErrUnsupportedFile indicates a config file extension other than
	// .toml, .yaml or .yml.
	ErrUnsupportedFile = errors.New("config: unsupported file type")

	// ErrInvalid indicates a configuration value that fails validation.
	ErrInvalid = errors.New("config: invalid value")
)

// Output formats.
const (
	FormatNested  = "nested"
	FormatNewick  = "newick"
	FormatHeaders = "headers"
)

// Config is one run's configuration. The zero value is not useful; start
// from Default.
type Config struct {
	// Calculator is a distance.Kind name.
	Calculator string `toml:"calculator" yaml:"calculator"`
	// Linkage is single, complete or average.
	Linkage string `toml:"linkage" yaml:"linkage"`
	// Iterations stops clustering after that many merges; 0 runs to a
	// single root.
	Iterations int `toml:"iterations" yaml:"iterations"`
	// Format is nested, newick or headers.
	Format string `toml:"format" yaml:"format"`
	// Workers bounds concurrent batch jobs.
	Workers int `toml:"workers" yaml:"workers"`
	// Output is a file (cluster) or directory (batch); empty means stdout
	// or the input directory.
	Output string `toml:"output" yaml:"output"`
	// Handles renders entity identifiers through handle.Name.
	Handles bool `toml:"handles" yaml:"handles"`

	// Table is the CSV of precomputed pairs for the table calculator.
	Table string `toml:"table" yaml:"table"`
	// Documents is the member documents file for the vector-space calculator.
	Documents string `toml:"documents" yaml:"documents"`
	// Edges is the call-graph edges file for the neighbourhood and path
	// calculators.
	Edges string `toml:"edges" yaml:"edges"`

	Web Web `toml:"web" yaml:"web"`
}

// Web configures the web distance calculator.
type Web struct {
	Endpoint          string  `toml:"endpoint" yaml:"endpoint"`
	CachePath         string  `toml:"cache_path" yaml:"cache_path"`
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `toml:"burst" yaml:"burst"`
	TimeoutSeconds    int     `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns TimeoutSeconds as a duration.
func (w Web) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Calculator: string(distance.KindLevenshtein),
		Linkage:    cluster.Single.String(),
		Format:     FormatNested,
		Workers:    4,
		Web: Web{
			CachePath:         filepath.Join(".hiercluster", "web-cache.db"),
			RequestsPerSecond: 1,
			Burst:             1,
			TimeoutSeconds:    30,
		},
	}
}

// Load reads path over Default. The decoder is picked by extension.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%q: %w", path, ErrUnsupportedFile)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}

// Kind returns the parsed calculator kind.
func (c Config) Kind() (distance.Kind, error) {
	return distance.ParseKind(c.Calculator)
}

// ParsedLinkage returns the parsed linkage.
func (c Config) ParsedLinkage() (cluster.Linkage, error) {
	return cluster.ParseLinkage(c.Linkage)
}

// Validate checks every field and the inputs the chosen calculator needs.
func (c Config) Validate() error {
	kind, err := c.Kind()
	if err != nil {
		return fmt.Errorf("%w: calculator: %v", ErrInvalid, err)
	}
	if _, err = c.ParsedLinkage(); err != nil {
		return fmt.Errorf("%w: linkage: %v", ErrInvalid, err)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d < 0", ErrInvalid, c.Iterations)
	}
	switch c.Format {
	case FormatNested, FormatNewick, FormatHeaders:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d < 1", ErrInvalid, c.Workers)
	}

	switch kind {
	case distance.KindTable:
		if c.Table == "" {
			return fmt.Errorf("%w: calculator %s needs a table file", ErrInvalid, kind)
		}
	case distance.KindVectorSpace:
		if c.Documents == "" {
			return fmt.Errorf("%w: calculator %s needs a documents file", ErrInvalid, kind)
		}
	case distance.KindNeighbourhood, distance.KindPath:
		if c.Edges == "" {
			return fmt.Errorf("%w: calculator %s needs an edges file", ErrInvalid, kind)
		}
	case distance.KindWeb:
		if c.Web.Endpoint == "" {
			return fmt.Errorf("%w: calculator %s needs web.endpoint", ErrInvalid, kind)
		}
		if c.Web.RequestsPerSecond <= 0 || c.Web.Burst < 1 || c.Web.TimeoutSeconds < 1 {
			return fmt.Errorf("%w: web rate %g, burst %d, timeout %ds", ErrInvalid,
				c.Web.RequestsPerSecond, c.Web.Burst, c.Web.TimeoutSeconds)
		}
	case distance.KindFunc:
		return fmt.Errorf("%w: calculator %s is library-only", ErrInvalid, kind)
	}

	return nil
}
