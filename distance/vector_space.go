// SPDX-License-Identifier: MIT

package distance

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// VectorSpace scores members by the cosine distance of their tf-idf
// document vectors. A member's document is the bag of words found in its
// identifiers and comments.
//
// Built once by LoadVectorSpace and read-only afterwards; safe for
// concurrent use.
type VectorSpace struct {
	vectors map[string]map[string]float64 // member key → term → weight
	norms   map[string]float64            // member key → Euclidean norm
	terms   int                           // vocabulary size
}

var _ Calculator = (*VectorSpace)(nil)

// LoadVectorSpace reads one member per line: the first whitespace-separated
// token is the member key, the remaining tokens are its words. Blank lines
// are skipped; a repeated key is rejected.
//
// Weights are tf * ln(1 + N/df) so that a term present in every document
// still contributes.
// Complexity: O(total tokens) time and space.
func LoadVectorSpace(r io.Reader) (*VectorSpace, error) {
	counts := make(map[string]map[string]int)
	df := make(map[string]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		key := fields[0]
		if _, dup := counts[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate member %q: %w", line, key, ErrBadRecord)
		}
		tf := make(map[string]int, len(fields)-1)
		for _, w := range fields[1:] {
			tf[strings.ToLower(w)]++
		}
		for w := range tf {
			df[w]++
		}
		counts[key] = tf
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading documents: %w", err)
	}

	n := float64(len(counts))
	vs := &VectorSpace{
		vectors: make(map[string]map[string]float64, len(counts)),
		norms:   make(map[string]float64, len(counts)),
		terms:   len(df),
	}
	for key, tf := range counts {
		vec := make(map[string]float64, len(tf))
		var sq float64
		for w, c := range tf {
			weight := float64(c) * math.Log(1+n/float64(df[w]))
			vec[w] = weight
			sq += weight * weight
		}
		vs.vectors[key] = vec
		vs.norms[key] = math.Sqrt(sq)
	}

	return vs, nil
}

// Distance implements Calculator. Members missing from the document set
// are Unknown; a member without words shares nothing with anyone.
func (vs *VectorSpace) Distance(a, b string) (float64, error) {
	va, okA := vs.vectors[a]
	vb, okB := vs.vectors[b]
	if !okA || !okB {
		return Unknown, nil
	}
	if a == b {
		return Min, nil
	}
	na, nb := vs.norms[a], vs.norms[b]
	if na == 0 || nb == 0 {
		return Max, nil
	}

	// iterate the smaller vector
	if len(vb) < len(va) {
		va, vb = vb, va
	}
	var dot float64
	for w, x := range va {
		dot += x * vb[w]
	}

	d := Max - dot/(na*nb)
	if d < Min { // rounding on parallel vectors
		d = Min
	}

	return d, nil
}

// Kind implements Calculator.
func (vs *VectorSpace) Kind() Kind { return KindVectorSpace }

// Members returns the known member keys in sorted order.
func (vs *VectorSpace) Members() []string {
	out := make([]string, 0, len(vs.vectors))
	for k := range vs.vectors {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Terms returns the vocabulary size.
func (vs *VectorSpace) Terms() int { return vs.terms }
