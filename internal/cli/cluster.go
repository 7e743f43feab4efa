// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hiercluster/cluster"
	"github.com/katalvlaran/hiercluster/config"
)

var flagFormat string

var clusterCmd = &cobra.Command{
	Use:   "cluster <entities-file|->",
	Short: "Cluster one set of entities",
	Long: `Reads one entity per line and clusters them.

With --iterations the run stops after that many merges and every
remaining cluster is printed. Formats:
  nested   indented tree
  newick   Newick, one line per cluster
  headers  the remaining cluster labels`,
	Args: cobra.ExactArgs(1),
	RunE: runCluster,
}

func init() {
	clusterCmd.Flags().StringVarP(&flagFormat, "format", "f", config.FormatNested, "output format: nested, newick or headers")
	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, args []string) error {
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
	if cfg.Iterations > 0 {
		_, err = c.ClusterToIteration(cfg.Iterations)
	} else {
		_, err = c.ClusterToSingle()
	}
	if err != nil {
		return err
	}
	logger.Debug().Int("entities", len(ids)).Int("iterations", c.Iteration()).Msg("clustered")

	out, err := openOutput(cmd, cfg.Output)
	if err != nil {
		return err
	}
	if err = writeClusters(out, c, cfg); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// writeClusters prints the clusterer's current state in cfg.Format.
func writeClusters(w io.Writer, c *cluster.Clusterer, cfg config.Config) error {
	show := display(cfg)
	if cfg.Format == config.FormatHeaders {
		bw := bufio.NewWriter(w)
		for _, h := range c.Headers() {
			fmt.Fprintln(bw, h)
		}
		return bw.Flush()
	}

	for _, n := range c.Clusters() {
		var err error
		if cfg.Format == config.FormatNewick {
			err = n.WriteNewick(w, show)
		} else {
			_, err = io.WriteString(w, n.NestedString(show))
		}
		if err != nil {
			return err
		}
	}

	return nil
}
