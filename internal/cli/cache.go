// SPDX-License-Identifier: MIT

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hiercluster/distance/web"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the web term-count cache",
}

var cacheImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a plain-text term-count cache",
	Long: `Imports lines of the form "<term> <count>" into the sqlite cache at
web.cache_path. Existing terms are overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runCacheImport,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of cached terms",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheImportCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheImport(cmd *cobra.Command, args []string) error {
	cache, err := web.OpenCache(runCfg.Web.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := cache.Import(cmd.Context(), f)
	if err != nil {
		return err
	}
	cmd.Printf("Imported %d terms into %s.\n", n, cache.Path())

	return nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	cache, err := web.OpenCache(runCfg.Web.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	n, err := cache.Len(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("%s: %d terms\n", cache.Path(), n)

	return nil
}
