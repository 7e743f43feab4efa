// SPDX-License-Identifier: MIT

package cluster

import (
	"strconv"
	"strings"
)

// iterationSep separates a cluster's base name from its merge step.
const iterationSep = "+"

// ClusterName names the cluster formed at the given (zero-based) iteration
// from near1 and near2: the lexicographically smaller label, cut at its
// first "+", followed by "+" and iteration+1. Merging "x1+1" with "x3" at
// iteration 1 gives "x1+2", never "x1+1+2".
func ClusterName(near1, near2 string, iteration int) string {
	base := near1
	if near2 < near1 {
		base = near2
	}
	if i := strings.Index(base, iterationSep); i >= 0 {
		base = base[:i]
	}

	return base + iterationSep + strconv.Itoa(iteration+1)
}

// ParseIteration returns the integer after the last "+" of name, or 0 when
// there is none or it does not parse.
func ParseIteration(name string) int {
	i := strings.LastIndex(name, iterationSep)
	if i < 0 {
		return 0
	}
	it, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return 0
	}

	return it
}

// Namer maps an entity identifier to another string: the key handed to the
// distance calculator, or the display name used by the serializers.
// A nil Namer is the identity.
type Namer func(id string) string

func (f Namer) apply(id string) string {
	if f == nil {
		return id
	}

	return f(id)
}
