// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/hiercluster/distance"
)

// ErrNilCounter indicates that New was given a nil Counter.
var ErrNilCounter = errors.New("web: nil counter")

// DefaultIndexSize is the assumed number of indexed pages, N.
const DefaultIndexSize = 1e12

// Calculator is the normalized web distance as a distance.Calculator.
// It is as safe for concurrent use as its Counter.
type Calculator struct {
	counter Counter
	logN    float64
	timeout time.Duration
	log     zerolog.Logger
}

var _ distance.Calculator = (*Calculator)(nil)

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for fetch failures. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Calculator) { c.log = l }
}

// WithTimeout bounds the three count lookups of one Distance call.
// Panics on a non-positive duration.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("web: WithTimeout: duration must be > 0")
	}

	return func(c *Calculator) { c.timeout = d }
}

// WithIndexSize overrides N. Panics unless n > 1.
func WithIndexSize(n float64) Option {
	if !(n > 1) {
		panic("web: WithIndexSize: size must be > 1")
	}

	return func(c *Calculator) { c.logN = math.Log(n) }
}

// New returns a Calculator reading counts from counter.
func New(counter Counter, opts ...Option) (*Calculator, error) {
	if counter == nil {
		return nil, ErrNilCounter
	}
	c := &Calculator{
		counter: counter,
		logN:    math.Log(DefaultIndexSize),
		timeout: 30 * time.Second,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Distance implements distance.Calculator. Identical terms are at
// distance.Min without a lookup. A failed lookup yields distance.Unknown
// and a nil error.
func (c *Calculator) Distance(a, b string) (float64, error) {
	if a == b {
		return distance.Min, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var counts [3]int64
	for i, q := range [3]string{a, b, a + " " + b} {
		n, err := c.counter.Count(ctx, q)
		if err != nil {
			c.log.Warn().Err(err).Str("a", a).Str("b", b).Str("query", q).Msg("web count unavailable")
			return distance.Unknown, nil
		}
		counts[i] = n
	}

	return NWD(counts[0], counts[1], counts[2], c.logN), nil
}

// Kind implements distance.Calculator.
func (c *Calculator) Kind() distance.Kind { return distance.KindWeb }

// NWD computes the normalized web distance from the two single-term counts,
// the joint count and ln N. Any zero count, or a degenerate denominator,
// gives distance.Max. The result is clamped to [distance.Min, distance.Max].
func NWD(fx, fy, fxy int64, logN float64) float64 {
	if fx <= 0 || fy <= 0 || fxy <= 0 {
		return distance.Max
	}
	lo, hi := math.Log(float64(fx)), math.Log(float64(fy))
	if hi < lo {
		lo, hi = hi, lo
	}
	den := logN - lo
	if den <= 0 {
		return distance.Max
	}

	d := (hi - math.Log(float64(fxy))) / den
	switch {
	case d < distance.Min:
		return distance.Min
	case d > distance.Max:
		return distance.Max
	}

	return d
}
