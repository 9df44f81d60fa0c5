// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"fmt"
	"strings"

	"envlint-cli/internal/report"
	"envlint-cli/internal/specgraph"
)

// ApprovedPackages returns the broadest check: every spec in the graph,
// root and transitive alike, must have its package name in the approved
// set. The check is name-only — no hash or version granularity.
//
// Each unapproved name is reported once, in first-seen order, listing every
// concrete instance of that name. Diamond edges cannot double-report a name
// because the traversal visits each unique hash exactly once.
func ApprovedPackages(approved NameSet) report.Check {
	return report.Check{
		Name: "approved packages",
		Run: func(g *specgraph.Graph) report.Report {
			instances := make(map[string][]*specgraph.SpecNode)
			var nameOrder []string

			for _, n := range g.AllSpecs() {
				if approved.Has(n.Name) {
					continue
				}
				if _, seen := instances[n.Name]; !seen {
					nameOrder = append(nameOrder, n.Name)
				}
				instances[n.Name] = append(instances[n.Name], n)
			}

			var rep report.Report
			for _, name := range nameOrder {
				group := instances[name]
				specs := make([]string, len(group))
				for i, n := range group {
					specs[i] = n.String()
				}
				rep.Add(report.Violation{
					Rule: report.RuleApprovedPackages,
					Name: name,
					Hash: group[0].Hash,
					Detail: fmt.Sprintf("package %s is not in the approved list (%s)",
						name, strings.Join(specs, ", ")),
				})
			}
			return rep
		},
	}
}
