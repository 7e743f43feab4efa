// SPDX-License-Identifier: MIT

package distance

import (
	"strings"
	"unicode"
)

// Identifier scores two identifiers by the Jaccard distance of their word
// tokens, e.g. "getFileName" and "setFileName" share {file, name}.
// Stateless, safe for concurrent use.
type Identifier struct{}

var _ Calculator = Identifier{}

// Distance implements Calculator.
func (Identifier) Distance(a, b string) (float64, error) {
	return JaccardDistance(TokenSet(a), TokenSet(b)), nil
}

// Kind implements Calculator.
func (Identifier) Kind() Kind { return KindIdentifier }

// SplitIdentifier breaks an identifier into lower-case words at
// non-alphanumeric separators, lower→upper transitions, the end of an
// upper-case run followed by a capitalized word (HTTPServer → http, server),
// and letter/digit boundaries.
func SplitIdentifier(id string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	rs := []rune(id)
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) &&
				i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				flush()
			case unicode.IsDigit(prev) != unicode.IsDigit(r):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	return words
}

// TokenSet returns the distinct words of an identifier.
func TokenSet(id string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range SplitIdentifier(id) {
		set[w] = struct{}{}
	}

	return set
}

// JaccardDistance returns 1 - |a∩b| / |a∪b|. Two empty sets are identical.
func JaccardDistance(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return Min
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter

	return Max - float64(inter)/float64(union)
}
