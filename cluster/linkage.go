// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"strings"
)

// Linkage selects how the distance between two clusters is derived from
// the distances between their elements.
type Linkage int

const (
	// Single takes the minimum over all cross pairs.
	Single Linkage = iota
	// Complete takes the maximum over all cross pairs.
	Complete
	// Average takes the arithmetic mean over all cross pairs.
	Average
)

var linkageNames = [...]string{Single: "single", Complete: "complete", Average: "average"}

// String implements fmt.Stringer.
func (l Linkage) String() string {
	if l < Single || l > Average {
		return fmt.Sprintf("Linkage(%d)", int(l))
	}

	return linkageNames[l]
}

// ParseLinkage maps a case-insensitive name onto a Linkage.
func ParseLinkage(s string) (Linkage, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for l, name := range linkageNames {
		if name == n {
			return Linkage(l), nil
		}
	}

	return Single, fmt.Errorf("%q: %w", s, ErrUnknownLinkage)
}

// combine folds resolved cross-pair distances. ds is never empty.
func (l Linkage) combine(ds []float64) float64 {
	acc := ds[0]
	for _, d := range ds[1:] {
		switch l {
		case Complete:
			if d > acc {
				acc = d
			}
		case Average:
			acc += d
		default:
			if d < acc {
				acc = d
			}
		}
	}
	if l == Average {
		acc /= float64(len(ds))
	}

	return acc
}
