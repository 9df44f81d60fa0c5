// SPDX-License-Identifier: MPL-2.0

// Package fetch prefetches language-ecosystem dependencies (Go modules,
// Cargo crates) for the specs of a concretized environment, so later builds
// can run offline. It only shells out to the ecosystem's own tool — it
// never downloads anything itself.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"envlint-cli/internal/issue"
	"envlint-cli/internal/specgraph"

	"github.com/charmbracelet/log"
)

type (
	// Runner executes an external tool in a working directory. The
	// production implementation wraps os/exec; tests substitute a fake.
	Runner interface {
		Run(ctx context.Context, dir, tool string, args ...string) error
	}

	// Ecosystem describes one language ecosystem the fetcher knows how to
	// prefetch for.
	Ecosystem struct {
		// Tag is the build-system tag selecting specs from the graph.
		Tag string
		// Tool is the executable name (e.g. "go", "cargo").
		Tool string
		// ToolchainPkg is the package name of the toolchain dependency a
		// spec of this ecosystem carries (e.g. "go", "rust").
		ToolchainPkg string
		// CacheEnv is the environment variable naming the download cache.
		CacheEnv string
		// Args are the tool arguments that perform the prefetch.
		Args []string
		// Ready reports whether a staged source tree can be fetched (e.g.
		// Cargo needs a Cargo.toml). Nil means always ready.
		Ready func(srcDir string) bool
	}

	// Options controls one fetch run.
	Options struct {
		// StageDir is the root under which sources are staged, one
		// <name>-<version>-<hash7> directory per spec.
		StageDir string
		// SpecNames optionally narrows the run to the named packages.
		SpecNames []string
		// UseEnvTool restricts tool resolution to the environment's own
		// toolchain, disabling the PATH fallback.
		UseEnvTool bool
		// LookPath resolves an executable; defaults to exec.LookPath.
		// Overridable for tests.
		LookPath func(file string) (string, error)
	}

	execRunner struct{}
)

// GoModules is the Go ecosystem: `go mod download` into GOMODCACHE.
func GoModules() Ecosystem {
	return Ecosystem{
		Tag:          specgraph.EcosystemGo,
		Tool:         "go",
		ToolchainPkg: "go",
		CacheEnv:     "GOMODCACHE",
		Args:         []string{"mod", "download"},
	}
}

// CargoCrates is the Rust ecosystem: `cargo fetch` into CARGO_HOME. Staged
// trees without a Cargo.toml are skipped.
func CargoCrates() Ecosystem {
	return Ecosystem{
		Tag:          specgraph.EcosystemCargo,
		Tool:         "cargo",
		ToolchainPkg: "rust",
		CacheEnv:     "CARGO_HOME",
		Args:         []string{"fetch"},
		Ready: func(srcDir string) bool {
			info, err := os.Stat(filepath.Join(srcDir, "Cargo.toml"))
			return err == nil && !info.IsDir()
		},
	}
}

// NewExecRunner returns the production Runner backed by os/exec. The tool's
// output streams straight through to the user.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, dir, tool string, args ...string) error {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Dependencies prefetches dependencies for every spec of the ecosystem in
// the graph (optionally narrowed to named specs). Failures on one spec do
// not stop the others; the joined error reports everything that went wrong.
func Dependencies(ctx context.Context, g *specgraph.Graph, eco Ecosystem, opts Options, runner Runner) error {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}

	if os.Getenv(eco.CacheEnv) == "" {
		log.Warn("cache location not set; dependencies go to the tool's default location", "var", eco.CacheEnv)
	}

	specs := specgraph.FilterByEcosystem(g, eco.Tag)
	specs = narrowByName(specs, opts.SpecNames)

	if len(specs) == 0 {
		log.Warn("no specs to process", "ecosystem", eco.Tag)
		return nil
	}

	var errs []error
	for _, spec := range specs {
		srcDir := stagePath(opts.StageDir, spec)

		if eco.Ready != nil && !eco.Ready(srcDir) {
			log.Debug("skipping spec: staged source not ready", "spec", spec.String(), "dir", srcDir)
			continue
		}

		tool, err := resolveTool(spec, eco, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		log.Info("fetching dependencies", "ecosystem", eco.Tag, "spec", spec.String())
		if err := runner.Run(ctx, srcDir, tool, eco.Args...); err != nil {
			errs = append(errs, issue.NewErrorContext().
				WithOperation(fmt.Sprintf("fetch %s dependencies", eco.Tag)).
				WithResource(spec.String()).
				WithSuggestion("Check that the spec's sources are staged under "+srcDir).
				Wrap(err).
				BuildError())
			continue
		}
		log.Info("fetched dependencies", "spec", spec.String())
	}
	return errors.Join(errs...)
}

// narrowByName filters specs to the requested names, warning about names
// that match nothing (a typo is easier to spot early than after a long run).
func narrowByName(specs []*specgraph.SpecNode, names []string) []*specgraph.SpecNode {
	if len(names) == 0 {
		return specs
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var out []*specgraph.SpecNode
	matched := make(map[string]bool)
	for _, spec := range specs {
		if wanted[spec.Name] {
			out = append(out, spec)
			matched[spec.Name] = true
		}
	}
	for _, name := range names {
		if !matched[name] {
			log.Warn("no concretized spec matches name", "name", name)
		}
	}
	return out
}

// resolveTool locates the ecosystem tool: first the spec's own toolchain
// dependency prefix, then (unless restricted) the PATH.
func resolveTool(spec *specgraph.SpecNode, eco Ecosystem, opts Options) (string, error) {
	if tc := spec.Dependency(eco.ToolchainPkg); tc != nil && tc.Prefix != "" {
		candidate := filepath.Join(tc.Prefix, "bin", eco.Tool)
		if path, err := opts.LookPath(candidate); err == nil {
			log.Debug("using toolchain from spec dependency", "tool", path)
			return path, nil
		}
	}

	if !opts.UseEnvTool {
		if path, err := opts.LookPath(eco.Tool); err == nil {
			log.Debug("using toolchain from PATH", "tool", path)
			return path, nil
		}
	}

	return "", issue.NewErrorContext().
		WithOperation(fmt.Sprintf("locate '%s' executable", eco.Tool)).
		WithResource(spec.String()).
		WithSuggestion(fmt.Sprintf("Install the '%s' package into the environment and re-concretize", eco.ToolchainPkg)).
		WithSuggestion(fmt.Sprintf("Or ensure '%s' is in your PATH", eco.Tool)).
		BuildError()
}

// stagePath returns the staged source directory for a spec.
func stagePath(stageDir string, spec *specgraph.SpecNode) string {
	return filepath.Join(stageDir, fmt.Sprintf("%s-%s-%s", spec.Name, spec.Version, spec.ShortHash()))
}
