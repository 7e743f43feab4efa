// SPDX-License-Identifier: MIT

package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hiercluster/distance"
)

// tableOf builds a symmetric table from "a b" → d entries.
func tableOf(t *testing.T, pairs map[[2]string]float64) *distance.Table {
	t.Helper()
	tbl := distance.NewTable()
	for k, v := range pairs {
		require.NoError(t, tbl.Set(k[0], k[1], v))
	}

	return tbl
}

// fourPoint: a-b 0.1, c-d 0.2, everything else 0.9.
func fourPoint(t *testing.T) *distance.Table {
	return tableOf(t, map[[2]string]float64{
		{"a", "b"}: 0.1, {"a", "c"}: 0.9, {"a", "d"}: 0.9,
		{"b", "c"}: 0.9, {"b", "d"}: 0.9, {"c", "d"}: 0.2,
	})
}

// threePoint: the x1/x2/x3 end-to-end fixture.
func threePoint(t *testing.T) *distance.Table {
	return tableOf(t, map[[2]string]float64{
		{"x1", "x2"}: 0.2, {"x1", "x3"}: 0.8, {"x2", "x3"}: 0.7,
	})
}

// balanced reports whether parentheses in s are balanced.
func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}

	return depth == 0
}
