// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hiercluster/cluster"
)

var forestCmd = &cobra.Command{
	Use:   "forest <entities-file|->",
	Short: "Print the minimum spanning forest of the entities",
	Long: `Prints the edges of the minimum spanning forest over the initial
distance matrix, one "a<TAB>b<TAB>distance" line per edge. Pairs at
distance 1 or with unknown distance are never linked.`,
	Args: cobra.ExactArgs(1),
	RunE: runForest,
}

func init() {
	rootCmd.AddCommand(forestCmd)
}

func runForest(cmd *cobra.Command, args []string) error {
	cfg := runCfg
	ids, err := readEntities(cmd, args[0])
	if err != nil {
		return err
	}

	kind, _ := cfg.Kind()
	calc, err := openCalculator(cfg, kind)
	if err != nil {
		return err
	}
	defer calc.Close()

	c, err := cluster.New(ids, calc, clusterOptions(cfg)...)
	if err != nil {
		return err
	}

	show := display(cfg)
	for _, e := range c.MinimumSpanningForest() {
		from, to := e.From, e.To
		if show != nil {
			from, to = show(from), show(to)
		}
		cmd.Printf("%s\t%s\t%.2f\n", from, to, e.Distance)
	}

	return nil
}
