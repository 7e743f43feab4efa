// SPDX-License-Identifier: MIT

// Package web implements the normalized web distance (NWD) between two
// terms, computed from search-engine hit counts:
//
//	NWD(x, y) = (max(ln f(x), ln f(y)) - ln f(x y)) / (ln N - min(ln f(x), ln f(y)))
//
// where f is the estimated number of pages containing the query and N is
// the assumed index size (1e12 by default).
//
// Counts come from a Counter. HTTPCounter queries a JSON search endpoint
// under a token-bucket rate limit and collapses duplicate in-flight
// requests; CachedCounter keeps every fetched count in a SQLite table so a
// term is only fetched once across runs.
//
// A count that cannot be fetched never fails a clustering run: Calculator
// logs the failure and reports distance.Unknown for that pair.
package web
