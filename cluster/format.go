// SPDX-License-Identifier: MIT

package cluster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ---------- Newick constants ----------
const (
	// rootParentDistance is the nominal height above the root.
	rootParentDistance = 1.0
	// minBranchLength keeps dendrogram tools away from zero-length branches.
	minBranchLength = 0.01
)

// NestedString renders the tree as indented text:
//
//	root-name
//	  |+<iteration> (<comment>)
//	    |-<leaf>
//	  |-<leaf>
//
// Children sit two spaces deeper than their parent. A subcluster whose name
// carries no "+" suffix prints as "|+<name>". Leaves print through display
// (identity when nil).
func (n *Node) NestedString(display Namer) string {
	var sb strings.Builder
	sb.WriteString(n.name)
	sb.WriteByte('\n')
	n.writeNested(&sb, 1, display)

	return sb.String()
}

func (n *Node) writeNested(sb *strings.Builder, depth int, display Namer) {
	lead := strings.Repeat("  ", depth)
	for _, c := range n.children {
		sb.WriteString(lead)
		if c.IsLeaf() {
			sb.WriteString("|-")
			sb.WriteString(display.apply(c.leaf))
			sb.WriteByte('\n')
			continue
		}

		sub := c.node
		if i := strings.LastIndex(sub.name, iterationSep); i >= 0 {
			fmt.Fprintf(sb, "|+%s (%s)\n", sub.name[i+1:], sub.comment)
		} else {
			fmt.Fprintf(sb, "|+%s\n", sub.name)
		}
		sub.writeNested(sb, depth+1, display)
	}
}

// Newick renders the tree in Newick format, terminated by ";\n".
//
// Internal nodes are labelled it<iteration>-<distance>. A leaf's branch
// length is its parent's distance; a subcluster's is the parent distance
// minus its own, floored at 0.01; the root hangs from a nominal 1.0.
// Leaf labels go through display, then characters Newick reserves are
// replaced by "_" and repeated labels get a "_<k>" suffix.
func (n *Node) Newick(display Namer) string {
	var sb strings.Builder
	_ = n.WriteNewick(&sb, display) // strings.Builder never fails

	return sb.String()
}

// WriteNewick writes the Newick rendering to w.
func (n *Node) WriteNewick(w io.Writer, display Namer) error {
	bw := bufio.NewWriter(w)
	seen := make(map[string]struct{})
	n.writeNewick(bw, rootParentDistance, display, seen)
	bw.WriteString(";\n")

	return bw.Flush()
}

func (n *Node) writeNewick(w *bufio.Writer, parentDistance float64, display Namer, seen map[string]struct{}) {
	w.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			w.WriteByte(',')
		}
		if c.IsLeaf() {
			w.WriteString(uniqueLabel(newickLabel(display.apply(c.leaf)), seen))
			w.WriteByte(':')
			w.WriteString(formatLength(n.distance))
			continue
		}
		c.node.writeNewick(w, n.distance, display, seen)
	}
	w.WriteByte(')')
	fmt.Fprintf(w, "it%d-%s:%s", n.Iteration(), formatLength(n.distance),
		formatLength(max(minBranchLength, parentDistance-n.distance)))
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// newickLabel replaces whitespace and the characters Newick reserves.
func newickLabel(s string) string {
	if s == "" {
		return "_"
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune("()[]:;,'", r) {
			return '_'
		}
		return r
	}, s)
}

// uniqueLabel suffixes label with "_<k>" (k = labels seen so far) until it
// is unused, then records it.
func uniqueLabel(label string, seen map[string]struct{}) string {
	out := label
	for k := len(seen); ; k++ {
		if _, dup := seen[out]; !dup {
			break
		}
		out = label + "_" + strconv.Itoa(k)
	}
	seen[out] = struct{}{}

	return out
}
