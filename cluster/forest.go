// SPDX-License-Identifier: MIT

package cluster

import (
	"sort"

	"github.com/katalvlaran/hiercluster/distance"
)

// Edge links two current labels at a measured distance, From < To.
type Edge struct {
	From     string
	To       string
	Distance float64
}

// MinimumSpanningForest returns Kruskal's minimum spanning forest over the
// current matrix. Cells that are Unknown or at the maximum distance are not
// edges, so unrelated groups stay separate trees.
//
// Steps:
//  1. Collect candidate edges from the current matrix.
//  2. Sort by (Distance, From, To) for a deterministic result.
//  3. Union-find with path compression and union by rank; keep an edge
//     when it joins two components.
//
// Complexity: O(E log E) with E ≤ n(n-1)/2.
func (c *Clusterer) MinimumSpanningForest() []Edge {
	var edges []Edge
	c.current.Do(func(a, b string, v float64) bool {
		if distance.IsUnknown(v) || v >= distance.Max {
			return true
		}
		if b < a {
			a, b = b, a
		}
		edges = append(edges, Edge{From: a, To: b, Distance: v})
		return true
	})
	sort.Slice(edges, func(i, j int) bool {
		ei, ej := edges[i], edges[j]
		if ei.Distance != ej.Distance {
			return ei.Distance < ej.Distance
		}
		if ei.From != ej.From {
			return ei.From < ej.From
		}
		return ei.To < ej.To
	})

	headers := c.current.Headers()
	parent := make(map[string]string, len(headers))
	rank := make(map[string]int, len(headers))
	for _, h := range headers {
		parent[h] = h
	}
	var find func(string) string
	find = func(u string) string {
		if parent[u] != u {
			parent[u] = find(parent[u]) // path compression
		}
		return parent[u]
	}
	union := func(u, v string) bool {
		ru, rv := find(u), find(v)
		if ru == rv {
			return false
		}
		switch {
		case rank[ru] < rank[rv]:
			parent[ru] = rv
		case rank[ru] > rank[rv]:
			parent[rv] = ru
		default:
			parent[rv] = ru
			rank[ru]++
		}
		return true
	}

	forest := make([]Edge, 0, len(headers))
	for _, e := range edges {
		if union(e.From, e.To) {
			forest = append(forest, e)
			if len(forest) == len(headers)-1 {
				break
			}
		}
	}

	return forest
}
