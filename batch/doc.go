// SPDX-License-Identifier: MIT

// Package batch clusters many independent entity sets concurrently.
//
// A Runner owns one shared, concurrency-safe distance.Calculator and runs
// one cluster.Clusterer per Job on a bounded errgroup. A failing job is
// reported in its Result and never cancels the others; only cancellation
// of the caller's context stops the batch, between jobs.
//
// Helpers load jobs from a directory of entity files, write each finished
// tree as a Newick ".tree" file, and Collect computes initial distance
// matrices for several calculators side by side.
package batch
