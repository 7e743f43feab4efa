// Package hiercluster groups named entities (class members, identifiers,
// search terms) into a binary cluster tree by agglomerative clustering.
//
// 🚀 What is hiercluster?
//
//	A small, deterministic clustering toolkit that brings together:
//		• Distance calculators: Levenshtein, identifier words, tf-idf
//		  vector space, call-graph neighbourhood and path, web co-occurrence
//		  (NWD) and precomputed tables, behind one interface
//		• A labeled, packed DistanceMatrix with nearest-pair search
//		• A Clusterer: single, complete or average linkage, resumable at
//		  any merge
//		• Cluster trees rendered as indented text or Newick
//		• A concurrent batch runner and the hiercluster command line
//
// ✨ Why hiercluster?
//
//   - Deterministic: ties broken lexicographically, same input, same tree
//   - Honest distances: an unknown score never looks close
//   - Calculators are measured once per pair and may be shared across goroutines
//
// Packages:
//
//	distance/     Calculator interface, built-in calculators, memoization
//	distance/web/ normalized web distance over a rate-limited, cached counter
//	matrix/       DistanceMatrix, Pair, nearest-pair search, Induced rebuilds
//	cluster/      Clusterer, Node tree, naming, Newick and nested output
//	handle/       display names from Eclipse member handles
//	batch/        many entity sets at once, .tree files, matrix collection
//	config/       TOML/YAML run configuration
//
// Quick ASCII example (distances a-b 0.1, c-d 0.2, rest 0.9):
//
//	      a+3 (0.90)
//	     /        \
//	  a+1 (0.10)  c+2 (0.20)
//	   /  \        /  \
//	  a    b      c    d
//
//	go install github.com/katalvlaran/hiercluster/cmd/hiercluster@latest
package hiercluster
