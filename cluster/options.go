// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"

	"github.com/katalvlaran/hiercluster/matrix"
)

// Option configures a Clusterer.
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options is the effective Clusterer configuration.
type Options struct {
	linkage   Linkage
	namer     Namer
	commenter func(matrix.Pair) string
}

// DefaultLinkage is single linkage.
const DefaultLinkage = Single

// DefaultCommenter annotates a cluster with its merge distance.
func DefaultCommenter(p matrix.Pair) string {
	return fmt.Sprintf("%.2f", p.Distance)
}

// WithLinkage sets the cluster-distance aggregation.
// Panics on a value outside Single..Average.
func WithLinkage(l Linkage) Option {
	if l < Single || l > Average {
		panic(fmt.Sprintf("cluster: WithLinkage: invalid linkage %d", int(l)))
	}

	return func(o *Options) { o.linkage = l }
}

// WithNamer sets the mapping from entity identifier to the key passed to
// the calculator (e.g. a member handle to its simple name).
// Panics on nil.
func WithNamer(f Namer) Option {
	if f == nil {
		panic("cluster: WithNamer(nil)")
	}

	return func(o *Options) { o.namer = f }
}

// WithCommenter sets the function producing each new node's comment from
// the merged pair. Panics on nil.
func WithCommenter(f func(matrix.Pair) string) Option {
	if f == nil {
		panic("cluster: WithCommenter(nil)")
	}

	return func(o *Options) { o.commenter = f }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		linkage:   DefaultLinkage,
		commenter: DefaultCommenter,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
