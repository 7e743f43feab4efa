// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/hiercluster/cluster"
	"github.com/katalvlaran/hiercluster/config"
	"github.com/katalvlaran/hiercluster/distance"
	"github.com/katalvlaran/hiercluster/distance/web"
	"github.com/katalvlaran/hiercluster/handle"
)

// calculator is a built distance.Calculator plus whatever it holds open.
type calculator struct {
	distance.Calculator
	closers []io.Closer
}

func (c *calculator) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}

	return errors.Join(errs...)
}

// openCalculator builds the calculator of the given kind from cfg and
// memoizes it.
func openCalculator(cfg config.Config, kind distance.Kind) (*calculator, error) {
	out := &calculator{}

	var (
		calc distance.Calculator
		err  error
	)
	switch kind {
	case distance.KindLevenshtein:
		calc = distance.Levenshtein{}
	case distance.KindIdentifier:
		calc = distance.Identifier{}
	case distance.KindTable:
		calc, err = loadFile(cfg.Table, func(r io.Reader) (distance.Calculator, error) {
			return distance.LoadTable(r)
		})
	case distance.KindVectorSpace:
		calc, err = loadFile(cfg.Documents, func(r io.Reader) (distance.Calculator, error) {
			return distance.LoadVectorSpace(r)
		})
	case distance.KindNeighbourhood, distance.KindPath:
		calc, err = loadFile(cfg.Edges, func(r io.Reader) (distance.Calculator, error) {
			return distance.LoadCallGraph(r, kind)
		})
	case distance.KindWeb:
		calc, err = openWeb(cfg.Web, out)
	default:
		err = fmt.Errorf("%w: %q is not available here", distance.ErrUnknownKind, kind)
	}
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	out.Calculator = distance.NewMemo(calc)
	logger.Debug().Str("calculator", kind.String()).Msg("calculator ready")

	return out, nil
}

func loadFile(path string, load func(io.Reader) (distance.Calculator, error)) (distance.Calculator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	calc, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return calc, nil
}

// openWeb wires the HTTP counter behind the sqlite cache.
func openWeb(wc config.Web, out *calculator) (distance.Calculator, error) {
	httpCounter, err := web.NewHTTPCounter(wc.Endpoint, web.WithRate(wc.RequestsPerSecond, wc.Burst))
	if err != nil {
		return nil, err
	}

	var counter web.Counter = httpCounter
	if wc.CachePath != "" {
		cache, err := web.OpenCache(wc.CachePath)
		if err != nil {
			return nil, err
		}
		out.closers = append(out.closers, cache)
		counter = web.NewCachedCounter(httpCounter, cache, logger)
		logger.Debug().Str("cache", cache.Path()).Msg("web cache open")
	}

	return web.New(counter, web.WithLogger(logger), web.WithTimeout(wc.Timeout()))
}

// clusterOptions maps cfg onto clusterer options. cfg is validated.
func clusterOptions(cfg config.Config) []cluster.Option {
	linkage, _ := cfg.ParsedLinkage()
	opts := []cluster.Option{cluster.WithLinkage(linkage)}
	if cfg.Handles {
		opts = append(opts, cluster.WithNamer(handle.Name))
	}

	return opts
}

// display returns the leaf renderer for output.
func display(cfg config.Config) cluster.Namer {
	if cfg.Handles {
		return handle.Name
	}

	return nil
}
