// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"fmt"
	"strings"

	"envlint-cli/internal/report"
	"envlint-cli/internal/specgraph"
)

// CompilerUsage returns the check that restricts which packages may be built
// with the named compiler. A spec whose active c/cxx/fortran provider
// resolves to that compiler must have its name in the allowed set. Specs
// with no toolchain provider at all (pure data or script packages) are
// exempt. One violation is emitted per offending spec, listing the
// languages it uses the compiler for.
//
// The provider is resolved through the graph's typed virtual edges, never by
// matching package names, so renamed compiler packages are still caught.
func CompilerUsage(compiler string, allowed NameSet) report.Check {
	return report.Check{
		Name: fmt.Sprintf("packages allowed to use %s", compiler),
		Run: func(g *specgraph.Graph) report.Report {
			var rep report.Report
			for _, n := range g.AllSpecs() {
				if allowed.Has(n.Name) {
					continue
				}
				var langs []string
				for _, virtual := range specgraph.ToolchainVirtuals {
					if p := n.Provider(virtual); p != nil && p.Name == compiler {
						langs = append(langs, virtual)
					}
				}
				if len(langs) == 0 {
					continue
				}
				rep.Add(report.Violation{
					Rule: report.RuleCompilerUsage,
					Name: n.Name,
					Hash: n.Hash,
					Detail: fmt.Sprintf("%s uses compiler %s (%s) but is not in the allowed package list",
						n, compiler, strings.Join(langs, ", ")),
				})
			}
			return rep
		},
	}
}

// AllowedCompilers returns the check that restricts which compilers may
// appear anywhere in the graph. Every declared c/cxx/fortran provider must
// be in the allowed set; one violation is emitted per offending
// (spec, language) pair so a spec mixing allowed and disallowed toolchains
// still pinpoints the exact edge.
func AllowedCompilers(allowed NameSet) report.Check {
	return report.Check{
		Name: "allowed compilers",
		Run: func(g *specgraph.Graph) report.Report {
			var rep report.Report
			for _, n := range g.AllSpecs() {
				for _, virtual := range specgraph.ToolchainVirtuals {
					p := n.Provider(virtual)
					if p == nil || allowed.Has(p.Name) {
						continue
					}
					rep.Add(report.Violation{
						Rule: report.RuleAllowedCompilers,
						Name: n.Name,
						Hash: n.Hash,
						Detail: fmt.Sprintf("%s uses disallowed %s provider %s",
							n, virtual, p),
					})
				}
			}
			return rep
		},
	}
}
