// SPDX-License-Identifier: MIT

// Package handle turns Eclipse JDT element handles (mementos) into the
// short member names people read in cluster output.
//
//	=proj/src<com.acme{Shop.java[Shop~total~QString;~I  → total
//	=proj/src<com.acme{Shop.java[Shop^count              → count
//	=proj/src<com.acme{Shop.java[Shop|1                  → initializer
//	=proj/src<com.acme{Shop.java[Shop[Cart               → Cart
//
// Strings that are not handles pass through unchanged.
package handle

import "strings"

// Kind classifies a handle by the element it points at.
type Kind int

const (
	// Plain is a string that is not a member handle.
	Plain Kind = iota
	// Type is a (possibly nested) type.
	Type
	// Method is a method or constructor.
	Method
	// Field is a field.
	Field
	// Initializer is a static or instance initializer block.
	Initializer
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Type:
		return "type"
	case Method:
		return "method"
	case Field:
		return "field"
	case Initializer:
		return "initializer"
	}

	return "plain"
}

// memento delimiters
const (
	delimType        = '['
	delimMethod      = '~'
	delimField       = '^'
	delimInitializer = '|'
	delimCount       = '!'
	escape           = '\\'
)

// Parse returns the display name and the kind of h.
func Parse(h string) (string, Kind) {
	// the member part starts at the last unescaped type delimiter
	start := lastUnescaped(h, delimType)
	if start < 0 {
		return h, Plain
	}
	member := h[start+1:]

	for i := 0; i < len(member); i++ {
		switch member[i] {
		case escape:
			i++
		case delimMethod:
			return unescape(stripCount(untilUnescaped(member[i+1:], delimMethod))), Method
		case delimField:
			return unescape(stripCount(member[i+1:])), Field
		case delimInitializer:
			return "initializer", Initializer
		}
	}

	return unescape(stripCount(member)), Type
}

// Name returns the display name of h; see Parse.
func Name(h string) string {
	name, _ := Parse(h)

	return name
}

// lastUnescaped returns the index of the last c not preceded by an escape.
func lastUnescaped(s string, c byte) int {
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escape:
			i++
		case c:
			last = i
		}
	}

	return last
}

// untilUnescaped returns s up to the first unescaped c.
func untilUnescaped(s string, c byte) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escape:
			i++
		case c:
			return s[:i]
		}
	}

	return s
}

// stripCount drops a trailing "!<n>" occurrence count.
func stripCount(s string) string {
	if i := lastUnescaped(s, delimCount); i >= 0 {
		return s[:i]
	}

	return s
}

func unescape(s string) string {
	if !strings.ContainsRune(s, escape) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == escape && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}

	return sb.String()
}
