// SPDX-License-Identifier: MIT

// Package cluster implements agglomerative hierarchical clustering over
// named entities.
//
// A Clusterer takes entity identifiers and a distance.Calculator, measures
// every pair once, and then repeatedly merges the two nearest clusters:
//
//	c, err := cluster.New(ids, calc)
//	root, err := c.ClusterToSingle()
//	fmt.Print(root.Newick(nil))
//
// Each merge produces an immutable Node named after the smaller of the two
// labels plus the merge step ("getName+3"). The run's History resolves a
// label back to its Node, or to a leaf.
//
// Linkage decides the distance between clusters: Single (default, minimum
// over member pairs), Complete (maximum) or Average (mean). An Unknown
// measurement always counts as the maximum distance 1.0, and ties between
// pairs break lexicographically, so a run is reproducible.
//
// Trees render as indented nested text (NestedString) or Newick
// (Newick, WriteNewick).
package cluster
