// SPDX-License-Identifier: MIT

// Package matrix - DistanceMatrix: labelled symmetric distance storage.
//
// Purpose:
//   - Keep one distance per unordered pair of header labels in a packed
//     lower triangle (diagonal included), offset = i*(i+1)/2 + j for j <= i.
//   - Guarantee safety at the public surface: unknown labels, NaN/Inf and
//     out-of-domain values are reported as errors, never inserted silently.
//   - Keep algorithmic determinism: header order is the caller's order,
//     scans run in fixed row-major order and ties break lexicographically.
//
// AI-Hints:
//   - The matrix is rebuilt per merge with Induced; do not try to patch rows
//     in place.
//   - Unknown (-1) cells are legal values; FindNearest reads them as 1.0.
//
// Complexity quicksheet:
//   - New: O(n²) zero-init; At/Set: O(1); FindNearest: O(n²);
//     Induced: O(n'²); Clone: O(n²).

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/hiercluster/distance"
)

// DistanceMatrix is a symmetric table of distances keyed by header labels.
//   - headers holds labels in insertion order; index maps label → position.
//   - data is the packed lower triangle; assigned mirrors it and records
//     which cells have been set (the diagonal is always assigned and zero).
//   - opts carries the numeric policy (see options.go).
//
// Not safe for concurrent mutation.
type DistanceMatrix struct {
	headers  []string
	index    map[string]int
	data     []float64
	assigned []bool
	opts     Options
}

// tri maps an unordered cell (i, j) onto its packed offset.
func tri(i, j int) int {
	if j > i {
		i, j = j, i
	}

	return i*(i+1)/2 + j
}

// New creates a matrix over headers with every off-diagonal pair unassigned.
// MAIN DESCRIPTION:
//   - Copies headers, validates them, allocates n*(n+1)/2 cells.
//
// Errors:
//   - ErrEmptyHeader, ErrDuplicateHeader.
//
// Complexity:
//   - Time O(n²), Space O(n²).
//
// Notes:
//   - Zero or one header is legal; such a matrix simply has no pairs.
func New(headers []string, opts ...Option) (*DistanceMatrix, error) {
	return newWithOptions(headers, gatherOptions(opts...))
}

func newWithOptions(headers []string, o Options) (*DistanceMatrix, error) {
	n := len(headers)
	m := &DistanceMatrix{
		headers:  make([]string, n),
		index:    make(map[string]int, n),
		data:     make([]float64, n*(n+1)/2),
		assigned: make([]bool, n*(n+1)/2),
		opts:     o,
	}
	copy(m.headers, headers)

	var i int
	for i = 0; i < n; i++ {
		h := m.headers[i]
		if h == "" {
			return nil, fmt.Errorf("DistanceMatrix.%s: header %d: %w", ctxNew, i, ErrEmptyHeader)
		}
		if _, dup := m.index[h]; dup {
			return nil, labelErrorf(ctxNew, h, ErrDuplicateHeader)
		}
		m.index[h] = i
		m.assigned[tri(i, i)] = true // self-distance is fixed at zero
	}

	return m, nil
}

// lookup resolves both labels or returns ErrUnknownHeader.
func (m *DistanceMatrix) lookup(method, a, b string) (int, int, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, 0, pairErrorf(method, a, b, ErrUnknownHeader)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, 0, pairErrorf(method, a, b, ErrUnknownHeader)
	}

	return i, j, nil
}

// Set stores v as the distance between a and b (and b and a).
// Implementation:
//   - Stage 1: resolve labels (ErrUnknownHeader).
//   - Stage 2: numeric policy: NaN/Inf (ErrNaNInf), diagonal must be 0
//     (ErrNonZeroDiagonal), domain [0,1] or distance.Unknown (ErrOutOfDomain).
//   - Stage 3: write the packed cell and mark it assigned.
//
// Complexity: O(1).
func (m *DistanceMatrix) Set(a, b string, v float64) error {
	i, j, err := m.lookup(ctxSet, a, b)
	if err != nil {
		return err
	}
	if m.opts.validateNaNInf && isNonFinite(v) {
		return pairErrorf(ctxSet, a, b, ErrNaNInf)
	}
	if i == j {
		if v != 0 {
			return pairErrorf(ctxSet, a, b, ErrNonZeroDiagonal)
		}

		return nil
	}
	if m.opts.rangeCheck && v != distance.Unknown && (v < distance.Min || v > distance.Max) {
		return pairErrorf(ctxSet, a, b, ErrOutOfDomain)
	}

	k := tri(i, j)
	m.data[k] = v
	m.assigned[k] = true

	return nil
}

// At returns the stored distance between a and b exactly as set
// (distance.Unknown included). Symmetric: At(a,b) == At(b,a).
//
// Errors:
//   - ErrUnknownHeader, ErrUnassigned.
//
// Complexity: O(1).
func (m *DistanceMatrix) At(a, b string) (float64, error) {
	i, j, err := m.lookup(ctxAt, a, b)
	if err != nil {
		return 0, err
	}
	k := tri(i, j)
	if !m.assigned[k] {
		return 0, pairErrorf(ctxAt, a, b, ErrUnassigned)
	}

	return m.data[k], nil
}

// Headers returns a copy of the header labels in matrix order.
func (m *DistanceMatrix) Headers() []string {
	out := make([]string, len(m.headers))
	copy(out, m.headers)

	return out
}

// Len returns the number of headers.
func (m *DistanceMatrix) Len() int { return len(m.headers) }

// Index returns the position of label and whether it is a header.
func (m *DistanceMatrix) Index(label string) (int, bool) {
	i, ok := m.index[label]

	return i, ok
}

// FindNearest returns the pair of distinct headers with the smallest
// distance.
// MAIN DESCRIPTION:
//   - Scans every off-diagonal cell once in row-major lower-triangle order.
//
// Behavior highlights:
//   - distance.Unknown (and any negative or NaN cell) counts as 1.0, so an
//     unmeasured pair can never win over a measured smaller one.
//   - Ties: lexicographically smallest (First, Second) wins, independent of
//     header order.
//   - The returned Pair carries the resolved distance.
//
// Errors:
//   - ErrTooFewHeaders (< 2 headers), ErrUnassigned (some pair never set).
//
// Complexity:
//   - Time O(n²), Space O(1).
func (m *DistanceMatrix) FindNearest() (Pair, error) {
	n := len(m.headers)
	if n < 2 {
		return Pair{}, fmt.Errorf("DistanceMatrix.%s: %d header(s): %w", ctxNearest, n, ErrTooFewHeaders)
	}

	var (
		best  Pair
		found bool
		i, j  int
	)
	for i = 1; i < n; i++ {
		for j = 0; j < i; j++ {
			k := tri(i, j)
			if !m.assigned[k] {
				return Pair{}, pairErrorf(ctxNearest, m.headers[i], m.headers[j], ErrUnassigned)
			}
			p := newPair(m.headers[i], m.headers[j], distance.Resolve(m.data[k]))
			if !found || p.before(best) {
				best, found = p, true
			}
		}
	}

	return best, nil
}

// Induced materializes a new matrix over keep ++ add.
// Implementation:
//   - Stage 1: build the header list and validate it (ErrDuplicateHeader,
//     ErrEmptyHeader); every kept label must be a header here
//     (ErrUnknownHeader).
//   - Stage 2: copy every cell between kept labels; cells touching an added
//     label stay unassigned.
//
// Behavior highlights:
//   - The receiver is not modified; the result owns its storage and
//     inherits the numeric policy.
//
// Complexity:
//   - Time O(n'²), Space O(n'²) with n' = len(keep)+len(add).
func (m *DistanceMatrix) Induced(keep []string, add ...string) (*DistanceMatrix, error) {
	src := make([]int, len(keep))
	for i, h := range keep {
		idx, ok := m.index[h]
		if !ok {
			return nil, labelErrorf(ctxInduce, h, ErrUnknownHeader)
		}
		src[i] = idx
	}

	headers := make([]string, 0, len(keep)+len(add))
	headers = append(headers, keep...)
	headers = append(headers, add...)
	res, err := newWithOptions(headers, m.opts)
	if err != nil {
		return nil, fmt.Errorf("DistanceMatrix.%s: %w", ctxInduce, err)
	}

	var i, j, s, d int
	for i = 0; i < len(keep); i++ {
		for j = 0; j < i; j++ {
			s = tri(src[i], src[j])
			d = tri(i, j)
			res.data[d] = m.data[s]
			res.assigned[d] = m.assigned[s]
		}
	}

	return res, nil
}

// Fill evaluates fn for every unordered pair of distinct headers, in
// row-major lower-triangle order (row label first), and stores the result.
// The first error from fn or Set stops the fill; cells already written stay.
//
// Complexity: O(n²) calls to fn.
func (m *DistanceMatrix) Fill(fn func(a, b string) (float64, error)) error {
	var i, j int
	for i = 1; i < len(m.headers); i++ {
		for j = 0; j < i; j++ {
			a, b := m.headers[i], m.headers[j]
			v, err := fn(a, b)
			if err != nil {
				return pairErrorf(ctxFill, a, b, err)
			}
			if err = m.Set(a, b, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// Complete reports whether every pair has been assigned.
// Complexity: O(n²).
func (m *DistanceMatrix) Complete() bool {
	for _, ok := range m.assigned {
		if !ok {
			return false
		}
	}

	return true
}

// Clone returns a deep copy with the same policy.
// Complexity: O(n²).
func (m *DistanceMatrix) Clone() *DistanceMatrix {
	c := &DistanceMatrix{
		headers:  make([]string, len(m.headers)),
		index:    make(map[string]int, len(m.index)),
		data:     make([]float64, len(m.data)),
		assigned: make([]bool, len(m.assigned)),
		opts:     m.opts,
	}
	copy(c.headers, m.headers)
	copy(c.data, m.data)
	copy(c.assigned, m.assigned)
	for k, v := range m.index {
		c.index[k] = v
	}

	return c
}

// Do calls fn for each assigned off-diagonal cell in row-major
// lower-triangle order with the raw stored value. Iteration stops when fn
// returns false.
func (m *DistanceMatrix) Do(fn func(a, b string, v float64) bool) {
	var i, j int
	for i = 1; i < len(m.headers); i++ {
		for j = 0; j < i; j++ {
			k := tri(i, j)
			if !m.assigned[k] {
				continue
			}
			if !fn(m.headers[i], m.headers[j], m.data[k]) {
				return
			}
		}
	}
}

// ---------- Formatting literals ----------
const (
	_fmtUnassigned = "?"
	_fmtUnknown    = "-"
	_fmtSep        = "\t"
)

// String renders the full symmetric table, tab separated, with a header
// row. Unassigned cells print as "?", Unknown cells as "-".
func (m *DistanceMatrix) String() string {
	var sb strings.Builder
	for _, h := range m.headers {
		sb.WriteString(_fmtSep)
		sb.WriteString(h)
	}
	sb.WriteByte('\n')

	var i, j int
	for i = 0; i < len(m.headers); i++ {
		sb.WriteString(m.headers[i])
		for j = 0; j < len(m.headers); j++ {
			sb.WriteString(_fmtSep)
			k := tri(i, j)
			switch {
			case !m.assigned[k]:
				sb.WriteString(_fmtUnassigned)
			case distance.IsUnknown(m.data[k]):
				sb.WriteString(_fmtUnknown)
			default:
				fmt.Fprintf(&sb, "%.2f", m.data[k])
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
