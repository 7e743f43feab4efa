// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hiercluster/batch"
	"github.com/katalvlaran/hiercluster/distance"
)

var flagCompare []string

var matrixCmd = &cobra.Command{
	Use:   "matrix <entities-file|->",
	Short: "Print the initial distance matrix",
	Long: `Measures every pair of entities and prints the distance matrix.
Use --compare to print one matrix per calculator, computed concurrently.
Unset cells print as "?", unknown distances as "-".`,
	Args: cobra.ExactArgs(1),
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().StringSliceVar(&flagCompare, "compare", nil, "calculators to compare (default: --calculator)")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	cfg := runCfg
	ids, err := readEntities(cmd, args[0])
	if err != nil {
		return err
	}

	var kinds []distance.Kind
	for _, name := range flagCompare {
		k, err := distance.ParseKind(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		k, _ := cfg.Kind()
		kinds = append(kinds, k)
	}

	calcs := make([]distance.Calculator, 0, len(kinds))
	for _, k := range kinds {
		calc, err := openCalculator(cfg, k)
		if err != nil {
			return err
		}
		defer calc.Close()
		calcs = append(calcs, calc)
	}

	ms, err := batch.Collect(cmd.Context(), ids, display(cfg), calcs...)
	if err != nil {
		return err
	}

	out, err := openOutput(cmd, cfg.Output)
	if err != nil {
		return err
	}
	for i, m := range ms {
		if len(ms) > 1 {
			if _, err = out.Write([]byte("# " + kinds[i].String() + "\n")); err != nil {
				break
			}
		}
		if _, err = out.Write([]byte(m.String())); err != nil {
			break
		}
	}
	if err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
