// SPDX-License-Identifier: MIT

package distance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// ErrEmptyMember indicates an edge endpoint with an empty member key.
var ErrEmptyMember = errors.New("distance: empty member key")

// CallGraph scores members of one class by their position in the class's
// undirected call/access graph (methods calling methods, methods touching
// fields).
//
// Two modes are supported:
//
//	KindNeighbourhood – Jaccard distance of closed neighbourhoods
//	                    (a member plus everything it is linked to).
//	KindPath          – shortest-path hop count h mapped to h/(h+1);
//	                    unreachable pairs are at Max.
//
// Members absent from the graph are Unknown. All methods are safe for
// concurrent use; AddEdge takes the write lock.
type CallGraph struct {
	mu   sync.RWMutex
	mode Kind
	adj  map[string]map[string]struct{} // member → neighbours (no self entries)
}

var _ Calculator = (*CallGraph)(nil)

// NewCallGraph returns an empty graph scoring in the given mode.
// Panics if mode is neither KindNeighbourhood nor KindPath (programmer error).
func NewCallGraph(mode Kind) *CallGraph {
	if mode != KindNeighbourhood && mode != KindPath {
		panic(fmt.Sprintf("distance: NewCallGraph: unsupported mode %q", mode))
	}

	return &CallGraph{mode: mode, adj: make(map[string]map[string]struct{})}
}

// AddMember registers an isolated member. Idempotent.
func (g *CallGraph) AddMember(id string) error {
	if id == "" {
		return ErrEmptyMember
	}
	g.mu.Lock()
	g.ensure(id)
	g.mu.Unlock()

	return nil
}

// AddEdge links a and b in both directions. A self-link only registers
// the member. Parallel edges collapse.
func (g *CallGraph) AddEdge(a, b string) error {
	if a == "" || b == "" {
		return ErrEmptyMember
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ensure(a)
	g.ensure(b)
	if a != b {
		g.adj[a][b] = struct{}{}
		g.adj[b][a] = struct{}{}
	}

	return nil
}

func (g *CallGraph) ensure(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]struct{})
	}
}

// LoadCallGraph reads one edge per line as "a b"; a line with a single
// token registers an isolated member. Blank lines and '#' comments are
// skipped.
func LoadCallGraph(r io.Reader, mode Kind) (*CallGraph, error) {
	g := NewCallGraph(mode)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		var err error
		switch len(fields) {
		case 1:
			err = g.AddMember(fields[0])
		case 2:
			err = g.AddEdge(fields[0], fields[1])
		default:
			err = fmt.Errorf("line %d: want 1 or 2 fields, got %d: %w", line, len(fields), ErrBadRecord)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading edges: %w", err)
	}

	return g, nil
}

// Distance implements Calculator.
func (g *CallGraph) Distance(a, b string) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	na, okA := g.adj[a]
	nb, okB := g.adj[b]
	if !okA || !okB {
		return Unknown, nil
	}
	if a == b {
		return Min, nil
	}

	if g.mode == KindNeighbourhood {
		ca := closed(a, na)
		cb := closed(b, nb)

		return JaccardDistance(ca, cb), nil
	}

	h, ok := g.hops(a, b)
	if !ok {
		return Max, nil
	}

	return float64(h) / float64(h+1), nil
}

// Kind implements Calculator.
func (g *CallGraph) Kind() Kind { return g.mode }

// Members returns every member in sorted order.
func (g *CallGraph) Members() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.adj))
	for id := range g.adj {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// closed returns the closed neighbourhood {id} ∪ N(id).
func closed(id string, n map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(n)+1)
	out[id] = struct{}{}
	for v := range n {
		out[v] = struct{}{}
	}

	return out
}

// hops runs a breadth-first search from src and stops at dst.
// Caller holds the read lock.
// Complexity: O(V + E).
func (g *CallGraph) hops(src, dst string) (int, bool) {
	depth := map[string]int{src: 0}
	queue := []string{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := range g.adj[u] {
			if _, seen := depth[v]; seen {
				continue
			}
			depth[v] = depth[u] + 1
			if v == dst {
				return depth[v], true
			}
			queue = append(queue, v)
		}
	}

	return 0, false
}
