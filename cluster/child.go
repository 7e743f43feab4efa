// SPDX-License-Identifier: MIT

package cluster

// Child is one entry of a Node's children: either a leaf entity identifier
// or a subcluster. The zero value is invalid and rejected by NewNode.
type Child struct {
	leaf string
	node *Node
}

// LeafChild returns a leaf child for an entity identifier.
func LeafChild(id string) Child { return Child{leaf: id} }

// ClusterChild returns a subcluster child.
func ClusterChild(n *Node) Child { return Child{node: n} }

// IsLeaf reports whether c is a leaf.
func (c Child) IsLeaf() bool { return c.node == nil }

// Leaf returns the entity identifier of a leaf child, or "".
func (c Child) Leaf() string { return c.leaf }

// Cluster returns the subcluster, or nil for a leaf.
func (c Child) Cluster() *Node { return c.node }

// Key is the identifier of a leaf or the name of a subcluster.
func (c Child) Key() string {
	if c.node != nil {
		return c.node.name
	}

	return c.leaf
}

// Count is 1 for a leaf and the subcluster's element count otherwise.
func (c Child) Count() int {
	if c.node != nil {
		return c.node.count
	}

	return 1
}

func (c Child) valid() bool {
	return c.node != nil || c.leaf != ""
}

// childLess orders children by key, leaves before clusters on equal keys.
func childLess(a, b Child) bool {
	ka, kb := a.Key(), b.Key()
	if ka != kb {
		return ka < kb
	}

	return a.IsLeaf() && !b.IsLeaf()
}
