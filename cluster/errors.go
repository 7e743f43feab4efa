// SPDX-License-Identifier: MIT

package cluster

import "errors"

// Sentinel errors. Every message is prefixed with "cluster: ..."; callers
// match them with errors.Is.
var (
	// ErrNilCalculator is returned by New when no distance calculator is given.
	ErrNilCalculator = errors.New("cluster: nil distance calculator")

	// ErrEmptyEntity indicates an empty entity identifier.
	ErrEmptyEntity = errors.New("cluster: empty entity identifier")

	// ErrDuplicateEntity indicates the same identifier supplied twice.
	ErrDuplicateEntity = errors.New("cluster: duplicate entity identifier")

	// ErrDone is returned by ClusterOnce when fewer than two clusters remain.
	ErrDone = errors.New("cluster: nothing left to merge")

	// ErrNoCluster is returned by ClusterToSingle when fewer than two
	// entities were supplied, so no cluster was ever formed.
	ErrNoCluster = errors.New("cluster: no cluster formed")

	// ErrNameCollision indicates that a generated cluster name is already
	// taken by an entity identifier.
	ErrNameCollision = errors.New("cluster: cluster name collides with an existing label")

	// ErrEmptyName indicates a node without a name.
	ErrEmptyName = errors.New("cluster: empty node name")

	// ErrNoChildren indicates a node without children.
	ErrNoChildren = errors.New("cluster: node has no children")

	// ErrNilChild indicates a nil subcluster or an empty leaf child.
	ErrNilChild = errors.New("cluster: nil or empty child")

	// ErrUnknownLinkage indicates a linkage name that cannot be parsed.
	ErrUnknownLinkage = errors.New("cluster: unknown linkage")
)
