// SPDX-License-Identifier: MIT

package distance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Table is a Calculator backed by a fixed set of symmetric pair scores.
// Identical keys are at distance Min; a pair that was never set is Unknown.
// Safe for concurrent use.
type Table struct {
	mu    sync.RWMutex
	pairs map[pairKey]float64
}

var _ Calculator = (*Table)(nil)

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{pairs: make(map[pairKey]float64)}
}

// Set records the score for the unordered pair {a, b}.
// Values must be finite and either in [Min, Max] or Unknown.
func (t *Table) Set(a, b string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || (v != Unknown && (v < Min || v > Max)) {
		return fmt.Errorf("Table.Set(%q,%q,%g): %w", a, b, v, ErrBadRecord)
	}
	t.mu.Lock()
	t.pairs[newPairKey(a, b)] = v
	t.mu.Unlock()

	return nil
}

// Distance implements Calculator.
func (t *Table) Distance(a, b string) (float64, error) {
	if a == b {
		return Min, nil
	}
	t.mu.RLock()
	v, ok := t.pairs[newPairKey(a, b)]
	t.mu.RUnlock()
	if !ok {
		return Unknown, nil
	}

	return v, nil
}

// Kind implements Calculator.
func (t *Table) Kind() Kind { return KindTable }

// Len returns the number of stored pairs.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.pairs)
}

// LoadTable reads "a,b,distance" records. Blank lines and lines starting
// with '#' are skipped.
func LoadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	t := NewTable()
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
		}
		a, b := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if a == "" || b == "" {
			return nil, fmt.Errorf("empty label in %v: %w", rec, ErrBadRecord)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("distance %q: %w", rec[2], ErrBadRecord)
		}
		if err = t.Set(a, b, v); err != nil {
			return nil, err
		}
	}

	return t, nil
}
