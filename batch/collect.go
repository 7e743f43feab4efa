// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hiercluster/cluster"
	"github.com/katalvlaran/hiercluster/distance"
	"github.com/katalvlaran/hiercluster/matrix"
)

// Collect measures ids with every calculator concurrently and returns one
// matrix per calculator, in the same order. Matrix headers are the ids;
// each calculator sees key(id) instead, as a Clusterer built with
// cluster.WithNamer(key) would (nil keeps ids as they are).
//
// Scores are stored as measured; anything unusable is stored as
// distance.Unknown. The first calculator error cancels the rest.
func Collect(ctx context.Context, ids []string, key cluster.Namer, calcs ...distance.Calculator) ([]*matrix.DistanceMatrix, error) {
	for i, calc := range calcs {
		if calc == nil {
			return nil, fmt.Errorf("calculator %d: %w", i, ErrNilCalculator)
		}
	}
	if key == nil {
		key = func(id string) string { return id }
	}

	out := make([]*matrix.DistanceMatrix, len(calcs))
	g, gctx := errgroup.WithContext(ctx)
	for i, calc := range calcs {
		i, calc := i, calc
		g.Go(func() error {
			m, err := matrix.New(ids)
			if err != nil {
				return err
			}
			err = m.Fill(func(a, b string) (float64, error) {
				if err := gctx.Err(); err != nil {
					return 0, err
				}
				v, err := calc.Distance(key(a), key(b))
				if err != nil {
					return 0, err
				}
				if distance.IsUnknown(v) {
					return distance.Unknown, nil
				}
				return distance.Resolve(v), nil
			})
			if err != nil {
				return fmt.Errorf("%s: %w", calc.Kind(), err)
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
