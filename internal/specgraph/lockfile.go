// SPDX-License-Identifier: MPL-2.0

package specgraph

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrLockfileInvalid marks a lockfile that could not be parsed or failed
// schema validation. Callers match it with errors.Is.
var ErrLockfileInvalid = errors.New("invalid lockfile")

//go:embed lockfile_schema.json
var lockfileSchema string

// compiledLockfileSchema is compiled once at startup; the schema is embedded
// and must always compile.
var compiledLockfileSchema = jsonschema.MustCompileString("env.lock.schema.json", lockfileSchema)

type (
	// lockfileDep mirrors one dependency entry of a concrete spec in the
	// lockfile. Virtuals carries the capabilities satisfied on this edge.
	lockfileDep struct {
		Name     string   `json:"name"`
		Hash     string   `json:"hash"`
		DepTypes []string `json:"deptypes"`
		Virtuals []string `json:"virtuals"`
	}

	// lockfileSpec mirrors one concrete spec entry in the lockfile.
	lockfileSpec struct {
		Name         string            `json:"name"`
		Version      string            `json:"version"`
		Variants     map[string]string `json:"variants"`
		BuildSystem  string            `json:"build_system"`
		Prefix       string            `json:"prefix"`
		Dependencies []lockfileDep     `json:"dependencies"`
	}

	// lockfileRoot mirrors one root entry: the hash of a concretized
	// top-level spec plus the abstract spec string it satisfies.
	lockfileRoot struct {
		Hash string `json:"hash"`
		Spec string `json:"spec"`
	}

	// lockfile is the full on-disk lockfile document.
	lockfile struct {
		Roots         []lockfileRoot          `json:"roots"`
		ConcreteSpecs map[string]lockfileSpec `json:"concrete_specs"`
	}
)

// parseLockfile validates raw lockfile bytes against the embedded schema and
// decodes them. Validation runs first so malformed documents fail with a
// structural error instead of a half-decoded graph.
func parseLockfile(data []byte) (*lockfile, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %w", ErrLockfileInvalid, err)
	}
	if err := compiledLockfileSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %w", ErrLockfileInvalid, err)
	}

	// Unknown fields are tolerated: hosts are free to record extra metadata
	// in the lockfile and older readers must keep working.
	var lf lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLockfileInvalid, err)
	}
	return &lf, nil
}

// buildGraph links a parsed lockfile into a Graph. Nodes are inserted in
// root order first so the first-discovery traversal order matches the
// lockfile's declared root order exactly.
func buildGraph(lf *lockfile) (*Graph, error) {
	g := NewGraph()

	// Insert every concrete spec, roots flagged in lockfile order.
	rootHashes := make(map[string]bool, len(lf.Roots))
	for _, r := range lf.Roots {
		rootHashes[r.Hash] = true
	}
	for _, r := range lf.Roots {
		spec, ok := lf.ConcreteSpecs[r.Hash]
		if !ok {
			return nil, fmt.Errorf("root spec %q references unknown hash %s", r.Spec, r.Hash)
		}
		g.AddSpec(newNode(r.Hash, spec), true)
	}
	for hash, spec := range lf.ConcreteSpecs {
		if rootHashes[hash] {
			continue
		}
		g.AddSpec(newNode(hash, spec), false)
	}

	// Link edges in declared order.
	for hash, spec := range lf.ConcreteSpecs {
		for _, dep := range spec.Dependencies {
			if err := g.Connect(hash, dep.Name, dep.Hash, dep.DepTypes, dep.Virtuals); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func newNode(hash string, spec lockfileSpec) *SpecNode {
	return &SpecNode{
		Hash:        hash,
		Name:        spec.Name,
		Version:     spec.Version,
		Variants:    spec.Variants,
		BuildSystem: spec.BuildSystem,
		Prefix:      spec.Prefix,
	}
}
