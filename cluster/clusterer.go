// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"

	"github.com/katalvlaran/hiercluster/distance"
	"github.com/katalvlaran/hiercluster/matrix"
)

// Clusterer runs agglomerative clustering over a fixed set of entities.
//
// Lifecycle:
//   - New measures every leaf pair once through the calculator.
//   - ClusterOnce merges the nearest pair and rebuilds the matrix with one
//     header fewer; no further calculator calls are made.
//   - The run is Done when one header is left.
//
// A Clusterer is not safe for concurrent use. It can be abandoned or
// resumed at any iteration boundary.
type Clusterer struct {
	calc     distance.Calculator
	opts     Options
	history  *History
	leaves   *matrix.DistanceMatrix // initial leaf matrix, never modified
	current  *matrix.DistanceMatrix
	entities int
	iter     int
	last     *Node
}

// New registers ids as leaves and measures every unordered pair.
//
// Calculator scores are stored as measured; Unknown, NaN and negative
// values are kept as distance.Unknown and read as 1.0 when merging.
//
// Errors: ErrNilCalculator, ErrEmptyEntity, ErrDuplicateEntity, or the
// first calculator error, wrapped.
//
// Ids are opaque, with one exception: an id shaped like a generated
// cluster name ("a+1" next to "a") is accepted here, but the merge that
// would generate that name fails with ErrNameCollision and the run cannot
// continue past it.
// Complexity: O(n²) calculator calls.
func New(ids []string, calc distance.Calculator, opts ...Option) (*Clusterer, error) {
	if calc == nil {
		return nil, ErrNilCalculator
	}
	o := gatherOptions(opts...)

	h := NewHistory()
	for _, id := range ids {
		if err := h.AddLeaf(id); err != nil {
			return nil, err
		}
	}

	leaves, err := matrix.New(ids)
	if err != nil {
		return nil, fmt.Errorf("cluster: initial matrix: %w", err)
	}
	err = leaves.Fill(func(a, b string) (float64, error) {
		v, err := calc.Distance(o.namer.apply(a), o.namer.apply(b))
		if err != nil {
			return 0, fmt.Errorf("%s distance: %w", calc.Kind(), err)
		}
		if distance.IsUnknown(v) {
			return distance.Unknown, nil
		}

		return distance.Resolve(v), nil
	})
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}

	return &Clusterer{
		calc:     calc,
		opts:     o,
		history:  h,
		leaves:   leaves,
		current:  leaves.Clone(),
		entities: len(ids),
	}, nil
}

// ClusterOnce merges the two nearest clusters and returns the new node.
// MAIN DESCRIPTION:
//   - Stage 1: nearest pair from the current matrix.
//   - Stage 2: name and build the node from the two labels' history.
//   - Stage 3: derive the next matrix: retained cells copied, the new row
//     computed by the linkage over cached leaf distances.
//   - Stage 4: commit history, matrix and iteration together.
//
// Errors: ErrDone with fewer than two headers; ErrNameCollision when the
// generated name is an existing entity. On error nothing changes.
// Complexity: O(n²) per call.
func (c *Clusterer) ClusterOnce() (*Node, error) {
	if c.current.Len() < 2 {
		return nil, ErrDone
	}

	p, err := c.current.FindNearest()
	if err != nil {
		return nil, fmt.Errorf("cluster: iteration %d: %w", c.iter+1, err)
	}

	name := ClusterName(p.First, p.Second, c.iter)
	if _, taken := c.history.Lookup(name); taken {
		return nil, fmt.Errorf("cluster: iteration %d: %q: %w", c.iter+1, name, ErrNameCollision)
	}
	node, err := NewNode(name, p.Distance, c.opts.commenter(p),
		c.history.Child(p.First), c.history.Child(p.Second))
	if err != nil {
		return nil, err
	}

	headers := c.current.Headers()
	keep := make([]string, 0, len(headers)-2)
	for _, h := range headers {
		if h != p.First && h != p.Second {
			keep = append(keep, h)
		}
	}
	next, err := c.current.Induced(keep, name)
	if err != nil {
		return nil, fmt.Errorf("cluster: iteration %d: %w", c.iter+1, err)
	}

	elems := node.Elements()
	for _, h := range keep {
		d, err := c.linkageDistance(elems, c.history.Elements(h))
		if err != nil {
			return nil, err
		}
		if err = next.Set(name, h, d); err != nil {
			return nil, fmt.Errorf("cluster: iteration %d: %w", c.iter+1, err)
		}
	}

	if err = c.history.AddCluster(node); err != nil {
		return nil, err
	}
	c.current = next
	c.last = node
	c.iter++

	return node, nil
}

// linkageDistance aggregates resolved leaf distances over all cross pairs.
func (c *Clusterer) linkageDistance(e1, e2 []string) (float64, error) {
	ds := make([]float64, 0, len(e1)*len(e2))
	for _, a := range e1 {
		for _, b := range e2 {
			v, err := c.leaves.At(a, b)
			if err != nil {
				return 0, fmt.Errorf("cluster: leaf distance: %w", err)
			}
			ds = append(ds, distance.Resolve(v))
		}
	}

	return c.opts.linkage.combine(ds), nil
}

// ClusterToSingle merges until one cluster is left and returns it.
// Returns ErrNoCluster when fewer than two entities were supplied.
func (c *Clusterer) ClusterToSingle() (*Node, error) {
	if c.entities < 2 {
		return nil, ErrNoCluster
	}
	for !c.Done() {
		if _, err := c.ClusterOnce(); err != nil {
			return nil, err
		}
	}

	return c.last, nil
}

// ClusterToIteration merges until Iteration() reaches k or nothing is left
// to merge, and returns the current header labels. A k at or below the
// current iteration is a no-op.
func (c *Clusterer) ClusterToIteration(k int) ([]string, error) {
	for c.iter < k && !c.Done() {
		if _, err := c.ClusterOnce(); err != nil {
			return nil, err
		}
	}

	return c.current.Headers(), nil
}

// Iteration returns the number of merges performed.
func (c *Clusterer) Iteration() int { return c.iter }

// Done reports whether fewer than two clusters remain.
func (c *Clusterer) Done() bool { return c.current.Len() < 2 }

// Headers returns the current labels: leaves and cluster names.
func (c *Clusterer) Headers() []string { return c.current.Headers() }

// Matrix returns a copy of the current distance matrix.
func (c *Clusterer) Matrix() *matrix.DistanceMatrix { return c.current.Clone() }

// Kind reports the calculator kind.
func (c *Clusterer) Kind() distance.Kind { return c.calc.Kind() }

// Linkage reports the configured linkage.
func (c *Clusterer) Linkage() Linkage { return c.opts.linkage }

// Lookup resolves a label through the run's history; see History.Lookup.
func (c *Clusterer) Lookup(label string) (*Node, bool) { return c.history.Lookup(label) }

// Clusters returns the current clusters in header order. A leaf that has
// not been merged yet is wrapped in a one-element node named after it.
func (c *Clusterer) Clusters() []*Node {
	headers := c.current.Headers()
	out := make([]*Node, 0, len(headers))
	for _, h := range headers {
		if n, _ := c.history.Lookup(h); n != nil {
			out = append(out, n)
			continue
		}
		n, _ := NewNode(h, 0, "", LeafChild(h)) // h is a non-empty registered leaf
		out = append(out, n)
	}

	return out
}

// Root returns the final cluster once the run is Done, nil before that or
// when no merge ever happened.
func (c *Clusterer) Root() *Node {
	if !c.Done() {
		return nil
	}

	return c.last
}
