// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hiercluster/batch"
)

var flagWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Cluster every entity file in a directory",
	Long: `Treats every *.txt file in <dir> as one entity set, clusters the sets
concurrently and writes <name>.tree (Newick) next to them, or into
--output when given. A failing set is reported and does not stop the others.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 4, "concurrent entity sets")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := runCfg
	dir := args[0]

	jobs, err := batch.LoadJobs(dir)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		cmd.Printf("No %s files in %s.\n", batch.EntityExt, dir)
		return nil
	}

	kind, _ := cfg.Kind()
	calc, err := openCalculator(cfg, kind)
	if err != nil {
		return err
	}
	defer calc.Close()

	opts := []batch.Option{
		batch.WithWorkers(cfg.Workers),
		batch.WithIterations(cfg.Iterations),
		batch.WithClusterOptions(clusterOptions(cfg)...),
		batch.WithLogger(logger),
	}
	runner, err := batch.NewRunner(calc, opts...)
	if err != nil {
		return err
	}

	results, err := runner.Run(cmd.Context(), jobs)
	if err != nil {
		return err
	}

	outDir := cfg.Output
	if outDir == "" {
		outDir = dir
	}
	if _, err = batch.WriteTrees(outDir, results, display(cfg)); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		cmd.Println(res.Summary())
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entity sets failed", failed, len(results))
	}

	return nil
}
