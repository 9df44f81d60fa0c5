// SPDX-License-Identifier: MPL-2.0

package specgraph

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// VirtualC is the virtual capability satisfied by a C toolchain provider.
	VirtualC = "c"
	// VirtualCxx is the virtual capability satisfied by a C++ toolchain provider.
	VirtualCxx = "cxx"
	// VirtualFortran is the virtual capability satisfied by a Fortran toolchain provider.
	VirtualFortran = "fortran"
)

// ToolchainVirtuals lists the toolchain capabilities in the order checks
// iterate them. The order is fixed so violation output is reproducible.
var ToolchainVirtuals = []string{VirtualC, VirtualCxx, VirtualFortran}

type (
	// Edge is a directed dependency edge from a spec to one of its
	// dependencies. Virtuals names the abstract capabilities (e.g. "c",
	// "cxx") that the dependency satisfies for the parent; an empty list
	// means a plain package dependency.
	Edge struct {
		// Name is the dependency's package name (denormalized from the node
		// for readable diagnostics on dangling edges).
		Name string
		// Hash is the dependency's content hash.
		Hash string
		// DepTypes classifies the edge (e.g. "build", "link", "run").
		DepTypes []string
		// Virtuals are the capabilities this dependency provides to the parent.
		Virtuals []string
		// To is the resolved dependency node. Set when the graph is linked.
		To *SpecNode
	}

	// SpecNode is one concrete, hash-identified package build configuration.
	// Nodes are constructed by the environment loader (or by tests building
	// synthetic graphs) and must be treated as immutable afterwards.
	SpecNode struct {
		// Hash uniquely identifies the concrete build configuration.
		Hash string
		// Name is the package name.
		Name string
		// Version is the concrete version string.
		Version string
		// Variants holds the build configuration knobs (value rendered as text).
		Variants map[string]string
		// BuildSystem identifies the package's build system (e.g. "cmake",
		// "go", "cargo"). Used for ecosystem filtering.
		BuildSystem string
		// Prefix is the install prefix, when the host recorded one.
		Prefix string
		// Edges are the dependency edges in the order the lockfile declares them.
		Edges []Edge
	}
)

// ShortHash returns the abbreviated hash used in human-readable output.
func (n *SpecNode) ShortHash() string {
	if len(n.Hash) <= 7 {
		return n.Hash
	}
	return n.Hash[:7]
}

// String renders the spec as name@version/hash7, the format used in all
// violation and log output.
func (n *SpecNode) String() string {
	return fmt.Sprintf("%s@%s/%s", n.Name, n.Version, n.ShortHash())
}

// Provider follows the typed virtual edge for the given capability and
// returns the concrete provider node, or nil when the spec declares no
// dependency satisfying that capability. Provider identity comes from the
// edge, never from package naming conventions.
func (n *SpecNode) Provider(virtual string) *SpecNode {
	for i := range n.Edges {
		for _, v := range n.Edges[i].Virtuals {
			if v == virtual {
				return n.Edges[i].To
			}
		}
	}
	return nil
}

// HasToolchainProvider reports whether the spec declares any c/cxx/fortran
// provider at all. Pure data or script packages return false.
func (n *SpecNode) HasToolchainProvider() bool {
	for _, virtual := range ToolchainVirtuals {
		if n.Provider(virtual) != nil {
			return true
		}
	}
	return false
}

// Dependency returns the direct dependency with the given package name, or
// nil if the spec has no such edge. Used by the fetch helpers to locate a
// spec's toolchain (e.g. its "go" or "rust" dependency).
func (n *SpecNode) Dependency(name string) *SpecNode {
	for i := range n.Edges {
		if n.Edges[i].Name == name {
			return n.Edges[i].To
		}
	}
	return nil
}

// VariantString renders the variants in a stable, sorted form for display.
func (n *SpecNode) VariantString() string {
	if len(n.Variants) == 0 {
		return ""
	}
	parts := make([]string, 0, len(n.Variants))
	for k, v := range n.Variants {
		switch v {
		case "true":
			parts = append(parts, "+"+k)
		case "false":
			parts = append(parts, "~"+k)
		default:
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
	}
	slices.Sort(parts)
	return strings.Join(parts, " ")
}
