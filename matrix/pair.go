// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Pair is the result of a nearest-pair query: two distinct header labels
// with First < Second (byte-wise), and the resolved distance between them.
type Pair struct {
	First    string
	Second   string
	Distance float64
}

// newPair orders a and b.
func newPair(a, b string, d float64) Pair {
	if b < a {
		a, b = b, a
	}

	return Pair{First: a, Second: b, Distance: d}
}

// before reports whether p wins over q in a nearest-pair scan:
// smaller distance first, then lexicographically smaller (First, Second).
func (p Pair) before(q Pair) bool {
	if p.Distance != q.Distance {
		return p.Distance < q.Distance
	}
	if p.First != q.First {
		return p.First < q.First
	}

	return p.Second < q.Second
}

// String implements fmt.Stringer.
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s) %.2f", p.First, p.Second, p.Distance)
}
