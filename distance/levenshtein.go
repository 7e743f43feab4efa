// SPDX-License-Identifier: MIT

package distance

import "strings"

// Levenshtein scores two names by their edit distance divided by the length
// of the longer one. Comparison ignores letter case and works on runes.
// Stateless, safe for concurrent use.
type Levenshtein struct{}

var _ Calculator = Levenshtein{}

// Distance implements Calculator.
func (Levenshtein) Distance(a, b string) (float64, error) {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return Min, nil
	}

	return float64(EditDistance(ra, rb)) / float64(longest), nil
}

// Kind implements Calculator.
func (Levenshtein) Kind() Kind { return KindLevenshtein }

// EditDistance returns the Levenshtein distance between two rune slices
// using two rolling rows.
// Complexity: O(len(a)*len(b)) time, O(len(b)) space.
func EditDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	var i, j, cost int
	for i = 1; i <= len(a); i++ {
		curr[0] = i
		for j = 1; j <= len(b); j++ {
			cost = 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost) // delete, insert, substitute
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
