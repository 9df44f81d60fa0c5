// SPDX-License-Identifier: MPL-2.0

package specgraph

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"envlint-cli/internal/issue"

	"gopkg.in/yaml.v3"
)

const (
	// ManifestName is the environment manifest file name.
	ManifestName = "env.yaml"
	// LockfileName is the environment lockfile file name.
	LockfileName = "env.lock"
)

type (
	// Manifest is the user-authored environment description. Only the root
	// spec list matters here; the rest of the manifest belongs to the host.
	Manifest struct {
		// Specs are the abstract root spec strings requested by the user.
		Specs []string `yaml:"specs"`
	}

	// NotConcretizedError reports an environment whose root specs are not
	// (or not all) concretized. Validation never runs on such environments
	// because the graph is unusable.
	NotConcretizedError struct {
		// Dir is the environment directory.
		Dir string
		// Missing lists the manifest root specs without a concretized root.
		Missing []string
		// NoLockfile is true when the lockfile does not exist at all.
		NoLockfile bool
	}
)

func (e *NotConcretizedError) Error() string {
	if e.NoLockfile {
		return fmt.Sprintf("environment %s is not concretized: no %s found", e.Dir, LockfileName)
	}
	return fmt.Sprintf("environment %s is not fully concretized: %d root spec(s) missing from %s: %s",
		e.Dir, len(e.Missing), LockfileName, strings.Join(e.Missing, ", "))
}

// LoadEnvironment reads the manifest and lockfile from dir and links the
// concretized dependency graph. The files are re-read on every call; the
// returned graph reflects exactly what is on disk at that moment.
//
// It fails with NotConcretizedError when the lockfile is missing or when any
// manifest root spec has no concretized root, and with an actionable error
// for unreadable or malformed files.
func LoadEnvironment(dir string) (*Graph, error) {
	manifest, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}

	lockPath := filepath.Join(dir, LockfileName)
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotConcretizedError{Dir: dir, Missing: manifest.Specs, NoLockfile: true}
		}
		return nil, issue.NewErrorContext().
			WithOperation("read environment lockfile").
			WithResource(lockPath).
			WithSuggestion("Check the file permissions").
			Wrap(err).
			BuildError()
	}

	lf, err := parseLockfile(data)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse environment lockfile").
			WithResource(lockPath).
			WithSuggestion("Re-concretize the environment to regenerate the lockfile").
			Wrap(err).
			BuildError()
	}

	if missing := missingRoots(manifest, lf); len(missing) > 0 {
		return nil, &NotConcretizedError{Dir: dir, Missing: missing}
	}

	g, err := buildGraph(lf)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("link environment dependency graph").
			WithResource(lockPath).
			WithSuggestion("Re-concretize the environment to regenerate the lockfile").
			Wrap(err).
			BuildError()
	}
	return g, nil
}

// loadManifest reads and decodes the environment manifest. A missing
// manifest is a configuration error, not a concretization error: without it
// there is no environment at all.
func loadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read environment manifest").
			WithResource(path).
			WithSuggestion("Pass the environment directory with --env or set it in the config file").
			Wrap(err).
			BuildError()
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse environment manifest").
			WithResource(path).
			WithSuggestion("Check the YAML syntax").
			Wrap(err).
			BuildError()
	}
	return &m, nil
}

// missingRoots returns the manifest root specs that have no concretized root
// in the lockfile. Comparison is by the abstract spec string the host wrote
// into both files, whitespace-normalized.
func missingRoots(m *Manifest, lf *lockfile) []string {
	concretized := make(map[string]bool, len(lf.Roots))
	for _, r := range lf.Roots {
		concretized[strings.Join(strings.Fields(r.Spec), " ")] = true
	}

	var missing []string
	for _, spec := range m.Specs {
		if !concretized[strings.Join(strings.Fields(spec), " ")] {
			missing = append(missing, spec)
		}
	}
	return missing
}
