// SPDX-License-Identifier: MIT

package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/hiercluster/cluster"
)

// Extensions of entity files and written trees.
const (
	EntityExt = ".txt"
	TreeExt   = ".tree"
)

// ReadEntities reads one identifier per line, trimming spaces and skipping
// blank lines and lines starting with '#'.
func ReadEntities(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading entities: %w", err)
	}

	return ids, nil
}

// LoadJobs turns every *.txt file in dir into a Job named after the file,
// in lexical file order.
func LoadJobs(dir string) ([]Job, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+EntityExt))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	jobs := make([]Job, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", p, err)
		}
		ids, err := ReadEntities(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		jobs = append(jobs, Job{
			Name: strings.TrimSuffix(filepath.Base(p), EntityExt),
			IDs:  ids,
		})
	}

	return jobs, nil
}

// WriteTrees writes <dir>/<job>.tree in Newick format for every result with
// a root, and returns the written paths. Failed or partial results are
// skipped.
func WriteTrees(dir string, results []Result, display cluster.Namer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	var written []string
	for _, res := range results {
		if res.Err != nil || res.Root == nil {
			continue
		}
		p := filepath.Join(dir, filepath.Base(res.Job)+TreeExt)
		if err := writeTree(p, res.Root, display); err != nil {
			return written, err
		}
		written = append(written, p)
	}

	return written, nil
}

func writeTree(path string, root *cluster.Node, display cluster.Namer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = root.WriteNewick(f, display); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}
