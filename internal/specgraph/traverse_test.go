// SPDX-License-Identifier: MPL-2.0

package specgraph

import "testing"

func TestFilterByEcosystem(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.AddSpec(testNode("root", "1.0", "roothash", "cmake"), true)
	g.AddSpec(testNode("gotool", "0.3", "gotoolhash", EcosystemGo), false)
	g.AddSpec(testNode("rusttool", "0.9", "rusttoolhash", EcosystemCargo), false)
	g.AddSpec(testNode("gotool2", "1.1", "gotool2hash", EcosystemGo), false)
	mustConnect(t, g, "roothash", "gotool", "gotoolhash", nil)
	mustConnect(t, g, "roothash", "rusttool", "rusttoolhash", nil)
	mustConnect(t, g, "gotoolhash", "gotool2", "gotool2hash", nil)

	goSpecs := FilterByEcosystem(g, EcosystemGo)
	if len(goSpecs) != 2 || goSpecs[0].Name != "gotool" || goSpecs[1].Name != "gotool2" {
		t.Fatalf("unexpected go specs: %v", goSpecs)
	}

	cargoSpecs := FilterByEcosystem(g, EcosystemCargo)
	if len(cargoSpecs) != 1 || cargoSpecs[0].Name != "rusttool" {
		t.Fatalf("unexpected cargo specs: %v", cargoSpecs)
	}

	if specs := FilterByEcosystem(g, "meson"); len(specs) != 0 {
		t.Errorf("expected no meson specs, got %v", specs)
	}
}

func TestDependentsMatchingDiamond(t *testing.T) {
	t.Parallel()

	// Two roots share one go spec; the filter must return it once.
	g := NewGraph()
	g.AddSpec(testNode("r1", "1.0", "r1hash", "cmake"), true)
	g.AddSpec(testNode("r2", "1.0", "r2hash", "cmake"), true)
	g.AddSpec(testNode("shared-go", "2.0", "sghash", EcosystemGo), false)
	mustConnect(t, g, "r1hash", "shared-go", "sghash", nil)
	mustConnect(t, g, "r2hash", "shared-go", "sghash", nil)

	matched := DependentsMatching(g, func(n *SpecNode) bool { return n.BuildSystem == EcosystemGo })
	if len(matched) != 1 || matched[0].Name != "shared-go" {
		t.Fatalf("expected shared-go exactly once, got %v", matched)
	}
}
