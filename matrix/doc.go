// SPDX-License-Identifier: MIT

// Package matrix provides DistanceMatrix, the labelled symmetric table of
// pairwise distances that drives agglomerative clustering.
//
// A DistanceMatrix is keyed by header labels (entity identifiers or cluster
// names), stores one value per unordered pair in a flat packed triangle and
// answers the nearest-pair query. It is a pure value container: clustering
// never patches it in place but derives the next matrix with Induced.
//
// Values are distances in [0,1] or the distance.Unknown sentinel. The
// nearest-pair query reads Unknown as the worst case (1.0) and breaks ties
// lexicographically on the pair of labels, so results never depend on
// header order.
//
// Errors:
//
//	ErrEmptyHeader, ErrDuplicateHeader, ErrUnknownHeader – header misuse.
//	ErrNaNInf, ErrOutOfDomain, ErrNonZeroDiagonal        – value policy.
//	ErrTooFewHeaders, ErrUnassigned                      – query preconditions.
package matrix
