// SPDX-License-Identifier: MIT

package cluster

import "fmt"

// History maps every label seen during one clustering run to the cluster it
// denotes, or to nil for a leaf entity. It only grows.
type History struct {
	nodes  map[string]*Node
	labels []string
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{nodes: make(map[string]*Node)}
}

// AddLeaf registers an entity identifier.
func (h *History) AddLeaf(id string) error {
	if id == "" {
		return ErrEmptyEntity
	}
	if _, ok := h.nodes[id]; ok {
		return fmt.Errorf("%q: %w", id, ErrDuplicateEntity)
	}
	h.nodes[id] = nil
	h.labels = append(h.labels, id)

	return nil
}

// AddCluster registers n under its name.
func (h *History) AddCluster(n *Node) error {
	if _, ok := h.nodes[n.name]; ok {
		return fmt.Errorf("%q: %w", n.name, ErrNameCollision)
	}
	h.nodes[n.name] = n
	h.labels = append(h.labels, n.name)

	return nil
}

// Lookup returns the cluster for label. ok is false for an unknown label;
// a known leaf returns (nil, true).
func (h *History) Lookup(label string) (n *Node, ok bool) {
	n, ok = h.nodes[label]

	return n, ok
}

// Elements returns the leaf identifiers a label stands for: the label
// itself for a leaf, the sorted leaves of the cluster otherwise, nil when
// unknown.
func (h *History) Elements(label string) []string {
	n, ok := h.nodes[label]
	switch {
	case !ok:
		return nil
	case n == nil:
		return []string{label}
	}

	return n.Elements()
}

// Child returns label as a Child: a leaf or the registered cluster.
func (h *History) Child(label string) Child {
	if n := h.nodes[label]; n != nil {
		return ClusterChild(n)
	}

	return LeafChild(label)
}

// Len returns the number of labels.
func (h *History) Len() int { return len(h.labels) }

// Labels returns every label in registration order.
func (h *History) Labels() []string {
	out := make([]string, len(h.labels))
	copy(out, h.labels)

	return out
}
