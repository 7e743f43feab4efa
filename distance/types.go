// SPDX-License-Identifier: MIT

package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Sentinel errors for calculator construction and parsing.
var (
	// ErrUnknownKind indicates that a kind name does not match any calculator.
	ErrUnknownKind = errors.New("distance: unknown calculator kind")

	// ErrNilFunc indicates that Func was called with a nil function.
	ErrNilFunc = errors.New("distance: nil distance function")

	// ErrBadRecord indicates a malformed line in an input file.
	ErrBadRecord = errors.New("distance: malformed record")
)

// Score bounds and the "could not measure" sentinel.
const (
	// Min is the distance between identical entities.
	Min = 0.0

	// Max is the distance between maximally dissimilar entities.
	Max = 1.0

	// Unknown is returned when a measurement could not be made.
	// It lies outside [Min, Max] so it can never be mistaken for a real score.
	Unknown = -1.0
)

// Kind tags the metric variant of a Calculator for logging and output labels.
type Kind string

// Known calculator kinds.
const (
	KindLevenshtein   Kind = "levenshtein"
	KindIdentifier    Kind = "identifier"
	KindVectorSpace   Kind = "vector-space"
	KindNeighbourhood Kind = "neighbourhood"
	KindPath          Kind = "path"
	KindWeb           Kind = "web"
	KindTable         Kind = "table"
	KindFunc          Kind = "func"
)

// Kinds lists every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindLevenshtein,
		KindIdentifier,
		KindVectorSpace,
		KindNeighbourhood,
		KindPath,
		KindWeb,
		KindTable,
		KindFunc,
	}
}

// ParseKind maps a case-insensitive name onto a Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if string(k) == n {
			return k, nil
		}
	}

	return "", fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// Calculator measures the dissimilarity of two entity keys.
//
// Distance returns a score in [Min, Max], or Unknown when the measurement
// could not be made. A non-nil error is a hard failure (bad configuration,
// broken input) and must be propagated by callers rather than papered over.
//
// Implementations shared between clustering runs must be safe for concurrent
// use.
type Calculator interface {
	Distance(a, b string) (float64, error)
	Kind() Kind
}

// IsUnknown reports whether v is the Unknown sentinel or otherwise unusable
// (negative or NaN).
func IsUnknown(v float64) bool {
	return v < Min || math.IsNaN(v)
}

// Resolve turns a raw calculator score into a usable one: Unknown, negative
// and NaN become Max (worst case), values are clamped into [Min, Max].
// Complexity: O(1).
func Resolve(v float64) float64 {
	if IsUnknown(v) {
		return Max
	}
	if v > Max {
		return Max
	}

	return v
}

// funcCalculator adapts a plain function.
type funcCalculator struct {
	kind Kind
	fn   func(a, b string) (float64, error)
}

// Func adapts fn into a Calculator reporting the given kind.
// An empty kind defaults to KindFunc.
func Func(kind Kind, fn func(a, b string) (float64, error)) (Calculator, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if kind == "" {
		kind = KindFunc
	}

	return &funcCalculator{kind: kind, fn: fn}, nil
}

func (f *funcCalculator) Distance(a, b string) (float64, error) { return f.fn(a, b) }
func (f *funcCalculator) Kind() Kind                            { return f.kind }

// pairKey is an unordered pair normalized so that a <= b.
type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}

	return pairKey{a: a, b: b}
}

func (p pairKey) String() string { return p.a + "\x00" + p.b }
