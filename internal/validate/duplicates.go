// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"fmt"
	"strings"

	"envlint-cli/internal/report"
	"envlint-cli/internal/specgraph"
)

// Duplicates returns the check that flags package names concretized at more
// than one distinct hash. Names in the ignore set are exempt. A package
// reachable twice at the same hash (a shared subgraph) is not a duplicate;
// only hash-distinct instances of the same name count.
//
// Groups are reported in first-seen order of a single graph traversal, so
// the output is deterministic and independent of any internal map order.
func Duplicates(ignore NameSet) report.Check {
	return report.Check{
		Name: "duplicate packages",
		Run: func(g *specgraph.Graph) report.Report {
			byName := make(map[string][]*specgraph.SpecNode)
			var nameOrder []string

			for _, n := range g.AllSpecs() {
				if _, seen := byName[n.Name]; !seen {
					nameOrder = append(nameOrder, n.Name)
				}
				byName[n.Name] = append(byName[n.Name], n)
			}

			var rep report.Report
			for _, name := range nameOrder {
				group := byName[name]
				if len(group) < 2 || ignore.Has(name) {
					continue
				}
				instances := make([]string, len(group))
				for i, n := range group {
					instances[i] = n.String()
				}
				rep.Add(report.Violation{
					Rule: report.RuleDuplicatePackages,
					Name: name,
					Detail: fmt.Sprintf("package %s concretized %d times: %s",
						name, len(group), strings.Join(instances, ", ")),
				})
			}
			return rep
		},
	}
}
