// SPDX-License-Identifier: MPL-2.0

package specgraph

const (
	// EcosystemGo tags specs built with the Go build system.
	EcosystemGo = "go"
	// EcosystemCargo tags specs built with the Cargo build system.
	EcosystemCargo = "cargo"
)

// DependentsMatching returns every spec for which pred holds, in the graph's
// first-discovery order. Each unique hash is visited exactly once, so a
// diamond dependency contributes a single entry no matter how many paths
// reach it.
func DependentsMatching(g *Graph, pred func(*SpecNode) bool) []*SpecNode {
	var out []*SpecNode
	for _, n := range g.AllSpecs() {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// FilterByEcosystem returns the specs whose declared build system matches
// the ecosystem tag, regardless of depth. The match is node-level: a spec
// belongs to an ecosystem by its own build system, not by what it depends on.
func FilterByEcosystem(g *Graph, tag string) []*SpecNode {
	return DependentsMatching(g, func(n *SpecNode) bool {
		return n.BuildSystem == tag
	})
}
