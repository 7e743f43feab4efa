// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"sort"
)

// Node is an immutable cluster: a name, the children merged into it, the
// number of leaves below it, the distance at which it was formed and an
// optional comment.
//
// Invariant: ElementCount == sum of Child.Count over Children.
type Node struct {
	name     string
	children []Child
	count    int
	distance float64
	comment  string
}

// NewNode builds a node. Children are copied, ordered by key (leaves before
// clusters on equal keys) and deduplicated, so output is reproducible no
// matter the argument order.
//
// Errors: ErrEmptyName, ErrNoChildren, ErrNilChild.
// Complexity: O(k log k) for k children.
func NewNode(name string, distance float64, comment string, children ...Child) (*Node, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoChildren)
	}

	cs := make([]Child, 0, len(children))
	for i, c := range children {
		if !c.valid() {
			return nil, fmt.Errorf("%q: child %d: %w", name, i, ErrNilChild)
		}
		cs = append(cs, c)
	}
	sort.SliceStable(cs, func(i, j int) bool { return childLess(cs[i], cs[j]) })

	n := &Node{name: name, distance: distance, comment: comment}
	for i, c := range cs {
		if i > 0 && cs[i-1].Key() == c.Key() && cs[i-1].IsLeaf() == c.IsLeaf() {
			continue // duplicate
		}
		n.children = append(n.children, c)
		n.count += c.Count()
	}

	return n, nil
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Children returns a copy of the ordered children.
func (n *Node) Children() []Child {
	out := make([]Child, len(n.children))
	copy(out, n.children)

	return out
}

// ElementCount returns the number of leaves below n.
func (n *Node) ElementCount() int { return n.count }

// Distance returns the dissimilarity at which n was formed.
func (n *Node) Distance() float64 { return n.distance }

// Comment returns the free-form annotation.
func (n *Node) Comment() string { return n.comment }

// Iteration returns the merge step encoded in the name (see ParseIteration).
func (n *Node) Iteration() int { return ParseIteration(n.name) }

// Elements returns every leaf identifier below n in sorted order.
// Complexity: O(L log L) for L leaves.
func (n *Node) Elements() []string {
	out := make([]string, 0, n.count)
	n.Walk(func(c Child, _ int) bool {
		if c.IsLeaf() {
			out = append(out, c.leaf)
		}
		return true
	})
	sort.Strings(out)

	return out
}

// Walk visits n (as a ClusterChild at depth 0) and then every descendant in
// depth-first pre-order, children in their stored order. Returning false
// stops the walk.
func (n *Node) Walk(fn func(c Child, depth int) bool) {
	n.walk(ClusterChild(n), 0, fn)
}

func (n *Node) walk(self Child, depth int, fn func(Child, int) bool) bool {
	if !fn(self, depth) {
		return false
	}
	for _, c := range n.children {
		if c.IsLeaf() {
			if !fn(c, depth+1) {
				return false
			}
			continue
		}
		if !c.node.walk(c, depth+1, fn) {
			return false
		}
	}

	return true
}

// String returns the nested-text rendering with raw identifiers.
func (n *Node) String() string { return n.NestedString(nil) }
