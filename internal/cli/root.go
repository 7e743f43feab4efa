// SPDX-License-Identifier: MIT

// Package cli implements the hiercluster command line.
package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hiercluster/config"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	debug   bool

	// Flags overriding config values; applied only when set.
	flagCalculator string
	flagLinkage    string
	flagTable      string
	flagDocuments  string
	flagEdges      string
	flagEndpoint   string
	flagHandles    bool
	flagIterations int
	flagOutput     string
)

// runCfg and logger are rebuilt before every command.
var (
	runCfg config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "hiercluster",
	Short: "Agglomerative clustering of named entities",
	Long: `hiercluster groups entities (class members, identifiers, terms) into a
binary cluster tree by repeatedly merging the two closest clusters.

Distances come from a pluggable calculator: levenshtein, identifier,
vector-space, neighbourhood, path, web or table.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVarP(&flagCalculator, "calculator", "c", "", "distance calculator")
	pf.StringVarP(&flagLinkage, "linkage", "l", "", "linkage: single, complete or average")
	pf.StringVar(&flagTable, "table", "", "CSV of precomputed distances (table calculator)")
	pf.StringVar(&flagDocuments, "documents", "", "member documents file (vector-space calculator)")
	pf.StringVar(&flagEdges, "edges", "", "call graph edges file (neighbourhood and path calculators)")
	pf.StringVar(&flagEndpoint, "web-endpoint", "", "search endpoint (web calculator)")
	pf.BoolVar(&flagHandles, "handles", false, "treat entities as member handles and display their names")
	pf.IntVarP(&flagIterations, "iterations", "i", 0, "stop after this many merges (0 = single root)")
	pf.StringVarP(&flagOutput, "output", "o", "", "output file or directory")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger = newLogger(cmd.ErrOrStderr(), debug)

	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		logger.Debug().Str("file", cfgFile).Msg("config loaded")
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	runCfg = cfg

	return nil
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	// batch workers and the web calculator log from several goroutines
	return zerolog.New(zerolog.SyncWriter(zerolog.ConsoleWriter{Out: w, NoColor: true})).
		Level(level).
		With().Timestamp().Logger()
}

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("calculator") {
		cfg.Calculator = flagCalculator
	}
	if set("linkage") {
		cfg.Linkage = flagLinkage
	}
	if set("table") {
		cfg.Table = flagTable
	}
	if set("documents") {
		cfg.Documents = flagDocuments
	}
	if set("edges") {
		cfg.Edges = flagEdges
	}
	if set("web-endpoint") {
		cfg.Web.Endpoint = flagEndpoint
	}
	if set("handles") {
		cfg.Handles = flagHandles
	}
	if set("iterations") {
		cfg.Iterations = flagIterations
	}
	if set("output") {
		cfg.Output = flagOutput
	}
	if set("format") {
		cfg.Format = flagFormat
	}
	if set("workers") {
		cfg.Workers = flagWorkers
	}
}
