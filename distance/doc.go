// SPDX-License-Identifier: MIT

// Package distance defines the dissimilarity capability consumed by the
// clustering engine and a set of interchangeable implementations.
//
// A Calculator maps two entity keys to a score in [0,1] where 0 means
// identical and 1 means maximally dissimilar. A calculator that could not
// take a measurement returns Unknown instead of guessing; consumers turn it
// into the worst case via Resolve, never into zero.
//
// Implementations:
//
//	Levenshtein  – normalized edit distance between names.
//	Identifier   – Jaccard distance of camelCase/underscore identifier tokens.
//	VectorSpace  – 1 - cosine similarity of tf-idf member documents.
//	CallGraph    – structural distance over an undirected member graph
//	               (shared neighbourhood or shortest-path hops).
//	Table        – fixed, precomputed pairs (tests, CSV input).
//	Func         – any plain function.
//
// The web co-occurrence distance lives in the web subpackage because it
// carries network and storage dependencies.
//
// Wrappers:
//
//	Memo – memoizes an expensive calculator; safe for concurrent use.
//
// Errors:
//
//	ErrUnknownKind – a kind name could not be parsed.
//	ErrNilFunc     – Func was given a nil function.
//	ErrBadRecord   – a malformed line in a table, documents or edges file.
package distance
