// SPDX-License-Identifier: MIT

package distance

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo wraps a Calculator and remembers every score it produced.
//
// The key is the unordered pair, so Distance(a,b) and Distance(b,a) share one
// measurement. Concurrent requests for the same pair are collapsed into a
// single call to the wrapped calculator. Errors are not cached.
type Memo struct {
	inner Calculator
	group singleflight.Group

	mu    sync.RWMutex
	cache map[pairKey]float64
	calls int
}

var _ Calculator = (*Memo)(nil)

// NewMemo wraps inner. Wrapping a *Memo returns it unchanged.
func NewMemo(inner Calculator) *Memo {
	if m, ok := inner.(*Memo); ok {
		return m
	}

	return &Memo{inner: inner, cache: make(map[pairKey]float64)}
}

// Distance implements Calculator.
func (m *Memo) Distance(a, b string) (float64, error) {
	key := newPairKey(a, b)

	m.mu.RLock()
	v, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return v, nil
	}

	res, err, _ := m.group.Do(key.String(), func() (interface{}, error) {
		d, err := m.inner.Distance(key.a, key.b)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.cache[key] = d
		m.calls++
		m.mu.Unlock()

		return d, nil
	})
	if err != nil {
		return Unknown, err
	}

	return res.(float64), nil
}

// Kind reports the wrapped calculator's kind.
func (m *Memo) Kind() Kind { return m.inner.Kind() }

// Calls returns how many measurements reached the wrapped calculator.
func (m *Memo) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.calls
}

// Len returns the number of cached pairs.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.cache)
}
