// SPDX-License-Identifier: MPL-2.0

package specgraph

import (
	"fmt"
)

type (
	// Graph is the rooted dependency forest of a concretized environment.
	// Nodes are keyed by content hash; the same package name may appear at
	// several hashes (that is exactly what the duplicate check looks for).
	// The graph is frozen once loaded: validators only read it.
	Graph struct {
		// byHash indexes every node by content hash.
		byHash map[string]*SpecNode
		// roots are the environment's top-level specs in manifest order.
		roots []*SpecNode
	}

	// DanglingEdgeError indicates a dependency edge referencing a hash that
	// has no corresponding concrete spec. It means the lockfile is corrupt.
	DanglingEdgeError struct {
		// From is the spec declaring the edge.
		From string
		// Dep is the dependency name on the edge.
		Dep string
		// Hash is the unresolvable hash.
		Hash string
	}
)

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("spec %s depends on %s/%s which is not in the lockfile", e.From, e.Dep, e.Hash)
}

// NewGraph creates an empty graph. Production graphs are built by
// LoadEnvironment; tests build synthetic graphs through AddSpec and Connect.
func NewGraph() *Graph {
	return &Graph{byHash: make(map[string]*SpecNode)}
}

// AddSpec inserts a node, optionally marking it as an environment root.
// Adding the same hash twice is a no-op for the node but may still append a
// root entry, so callers add each spec exactly once.
func (g *Graph) AddSpec(n *SpecNode, root bool) {
	if _, ok := g.byHash[n.Hash]; !ok {
		g.byHash[n.Hash] = n
	}
	if root {
		g.roots = append(g.roots, g.byHash[n.Hash])
	}
}

// Connect links a dependency edge from parent to child by hash. The edge's
// Virtuals name the capabilities the child satisfies for the parent.
func (g *Graph) Connect(parentHash, childName, childHash string, depTypes, virtuals []string) error {
	parent, ok := g.byHash[parentHash]
	if !ok {
		return fmt.Errorf("unknown parent spec %s", parentHash)
	}
	child, ok := g.byHash[childHash]
	if !ok {
		return &DanglingEdgeError{From: parent.String(), Dep: childName, Hash: childHash}
	}
	parent.Edges = append(parent.Edges, Edge{
		Name:     childName,
		Hash:     child.Hash,
		DepTypes: depTypes,
		Virtuals: virtuals,
		To:       child,
	})
	return nil
}

// Node returns the spec with the given hash, or nil.
func (g *Graph) Node(hash string) *SpecNode {
	return g.byHash[hash]
}

// Roots returns the environment's top-level specs in manifest order.
func (g *Graph) Roots() []*SpecNode {
	out := make([]*SpecNode, len(g.roots))
	copy(out, g.roots)
	return out
}

// Len returns the number of unique concrete specs in the graph.
func (g *Graph) Len() int {
	return len(g.byHash)
}

// AllSpecs returns every spec reachable from the roots in first-discovery
// order: a depth-first walk starting from the roots in root order, following
// dependency edges in declared order, visiting each unique hash exactly
// once. Diamond dependencies therefore appear a single time, and the order
// is independent of map iteration order.
func (g *Graph) AllSpecs() []*SpecNode {
	visited := make(map[string]bool, len(g.byHash))
	var order []*SpecNode

	var walk func(n *SpecNode)
	walk = func(n *SpecNode) {
		if n == nil || visited[n.Hash] {
			return
		}
		visited[n.Hash] = true
		order = append(order, n)
		for i := range n.Edges {
			walk(n.Edges[i].To)
		}
	}

	for _, root := range g.roots {
		walk(root)
	}
	return order
}
