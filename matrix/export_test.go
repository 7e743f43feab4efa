// SPDX-License-Identifier: MIT

package matrix

// Test bridge: a read-only view of the internal options for matrix_test.

// OptionsSnapshot mirrors Options with exported fields.
type OptionsSnapshot struct {
	ValidateNaNInf bool
	RangeCheck     bool
}

// GatherOptionsSnapshot applies opts over the defaults and returns the result.
func GatherOptionsSnapshot(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{ValidateNaNInf: o.validateNaNInf, RangeCheck: o.rangeCheck}
}

// PolicyOf returns the numeric policy carried by m.
func PolicyOf(m *DistanceMatrix) OptionsSnapshot {
	return OptionsSnapshot{ValidateNaNInf: m.opts.validateNaNInf, RangeCheck: m.opts.rangeCheck}
}
