// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal).
//
// The policy travels with the matrix: Clone and Induced copy it, so a
// matrix rebuilt during clustering validates exactly like its parent.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf rejects NaN and ±Inf in Set.
	DefaultValidateNaNInf = true

	// DefaultRangeCheck rejects finite values outside [0,1] other than the
	// Unknown sentinel.
	DefaultRangeCheck = true
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
	rangeCheck     bool // DefaultRangeCheck
}

// WithValidateNaNInf toggles finite-value validation in Set.
//
// Notes:
//   - Disabling it lets NaN through; FindNearest then treats NaN like
//     Unknown (worst case), never like zero.
func WithValidateNaNInf(on bool) Option {
	return func(o *Options) { o.validateNaNInf = on }
}

// WithRangeCheck toggles the [0,1] domain check in Set.
//
// Notes:
//   - With the check off, values above 1 are stored as given and clamped
//     to 1 by FindNearest; negative values count as Unknown.
func WithRangeCheck(on bool) Option {
	return func(o *Options) { o.rangeCheck = on }
}

// gatherOptions applies user setters over the defaults in order
// (last-writer-wins).
// Complexity: O(len(user)).
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf: DefaultValidateNaNInf,
		rangeCheck:     DefaultRangeCheck,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
