// SPDX-License-Identifier: MIT

package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hiercluster/batch"
)

// readEntities reads ids from path, or from stdin when path is "-".
func readEntities(cmd *cobra.Command, path string) ([]string, error) {
	if path == "-" {
		return batch.ReadEntities(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return batch.ReadEntities(f)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns the command's stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	return os.Create(path)
}
