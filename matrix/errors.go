// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every public method returns one of these sentinels, wrapped with the
// method name and the offending labels; tests match them via errors.Is.
// Nothing in this package panics on user input. Option constructors panic
// only on nonsensical arguments (programmer error).

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so it is easy to grep in
// logs. Methods wrap with fmt.Errorf("DistanceMatrix.<op>(...): %w", ErrX);
// callers still use errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// header validity -> numeric policy (NaN/Inf) -> diagonal -> domain range
// -> query preconditions (too few headers, unassigned pair).

var (
	// ErrEmptyHeader is returned when a header label is the empty string.
	ErrEmptyHeader = errors.New("matrix: empty header label")

	// ErrDuplicateHeader is returned when the same label is given twice.
	ErrDuplicateHeader = errors.New("matrix: duplicate header label")

	// ErrUnknownHeader indicates a label that is not a header of the matrix.
	// At/Set never insert new headers.
	ErrUnknownHeader = errors.New("matrix: unknown header label")

	// ErrNaNInf signals a NaN or ±Inf value under the default numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrOutOfDomain signals a distance outside [0,1] that is not the
	// Unknown sentinel (range check enabled).
	ErrOutOfDomain = errors.New("matrix: distance outside [0,1]")

	// ErrNonZeroDiagonal signals an attempt to store a non-zero self-distance.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal must be zero")

	// ErrTooFewHeaders is returned by FindNearest on fewer than two headers.
	ErrTooFewHeaders = errors.New("matrix: fewer than two headers")

	// ErrUnassigned indicates a pair of distinct headers whose distance was
	// never set.
	ErrUnassigned = errors.New("matrix: distance never assigned")
)

// ---------- error context tags ----------

const (
	ctxNew     = "New"
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxNearest = "FindNearest"
	ctxInduce  = "Induced"
	ctxFill    = "Fill"
)

// pairErrorf wraps err with the method tag and the pair of labels.
func pairErrorf(method, a, b string, err error) error {
	return fmt.Errorf("DistanceMatrix.%s(%q,%q): %w", method, a, b, err)
}

// labelErrorf wraps err with the method tag and one label.
func labelErrorf(method, label string, err error) error {
	return fmt.Errorf("DistanceMatrix.%s(%q): %w", method, label, err)
}
