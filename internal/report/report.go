// SPDX-License-Identifier: MPL-2.0

// Package report defines the data records produced by environment validators
// and the runner that executes a set of checks over one graph. Violations
// are data, never errors: a check always runs to completion and hands back
// everything it found, so one invocation surfaces every problem at once.
package report

import (
	"envlint-cli/internal/specgraph"
)

const (
	// RuleDuplicatePackages flags a package name concretized at more than one hash.
	RuleDuplicatePackages Rule = "duplicate-packages"
	// RuleCompilerUsage flags a package using a restricted compiler without being allowed to.
	RuleCompilerUsage Rule = "compiler-usage"
	// RuleAllowedCompilers flags a toolchain provider outside the allowed compiler set.
	RuleAllowedCompilers Rule = "allowed-compilers"
	// RuleApprovedPackages flags a package name outside the approved set.
	RuleApprovedPackages Rule = "approved-packages"
)

type (
	// Rule identifies which validator produced a violation.
	Rule string

	// Violation is one recorded policy breach. It is produced by a check and
	// never mutated afterwards.
	Violation struct {
		// Rule names the check that found the breach.
		Rule Rule
		// Name is the offending package name.
		Name string
		// Hash is the offending spec hash, when the breach is hash-specific
		// (empty for name-level breaches such as unapproved packages).
		Hash string
		// Detail is the human-readable description rendered to the user.
		Detail string
	}

	// Report is an ordered sequence of violations. Order is discovery order
	// and is stable across runs against the same graph.
	Report struct {
		Violations []Violation
	}

	// Check is a named validator run against a loaded graph. Checks read the
	// graph and return a report; they never mutate nodes or edges.
	Check struct {
		// Name is the human-readable check name used in summaries.
		Name string
		// Run executes the check over the graph.
		Run func(g *specgraph.Graph) Report
	}
)

// OK reports whether the report contains no violations.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Add appends a violation, preserving discovery order.
func (r *Report) Add(v Violation) {
	r.Violations = append(r.Violations, v)
}

// Run executes every check against the same graph and concatenates the
// resulting violations, preserving each check's internal order and the
// caller's check order. It never short-circuits: a failing check does not
// prevent later checks from running, so the merged report shows every
// problem in one pass.
func Run(g *specgraph.Graph, checks ...Check) Report {
	var merged Report
	for _, check := range checks {
		rep := check.Run(g)
		merged.Violations = append(merged.Violations, rep.Violations...)
	}
	return merged
}
