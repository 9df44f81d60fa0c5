// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"envlint-cli/internal/issue"
	"envlint-cli/internal/report"
	"envlint-cli/internal/specgraph"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command group
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run policy checks against the concretized environment",
	Long: `Run policy checks against the concretized environment.

Each check reads the resolved dependency graph from the environment's
lockfile and reports every violation it finds; a check never stops at the
first problem. The command exits 0 when the environment is clean and 1 when
any violation was found.`,
}

func init() {
	validateCmd.AddCommand(validateDuplicatesCmd)
	validateCmd.AddCommand(validateCompilerUsageCmd)
	validateCmd.AddCommand(validateCompilersCmd)
	validateCmd.AddCommand(validateApprovedCmd)
	validateCmd.AddCommand(validateAllCmd)
}

// loadGraph loads the environment's concrete spec graph for a validation or
// fetch run. Structural failures (missing lockfile, manifest roots without a
// concrete match, malformed lockfile) are fatal: they are rendered and
// converted into an ExitError so RunE handlers can simply return.
func loadGraph(cmd *cobra.Command) (*specgraph.Graph, error) {
	g, err := specgraph.LoadEnvironment(environmentDir())
	if err != nil {
		renderLoadError(cmd, err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return nil, &ExitError{Code: 1, Err: err}
	}
	return g, nil
}

// renderLoadError prints a structural environment error. Known failure modes
// get their rendered issue card; everything else falls back to the plain
// (or actionable) error text.
func renderLoadError(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))

	var notConcretized *specgraph.NotConcretizedError
	if errors.As(err, &notConcretized) {
		if card, renderErr := issue.Get(issue.EnvironmentNotConcretizedId).Render("dark"); renderErr == nil {
			fmt.Fprintln(out, card)
		}
		return
	}
	if errors.Is(err, specgraph.ErrLockfileInvalid) {
		if card, renderErr := issue.Get(issue.LockfileInvalidId).Render("dark"); renderErr == nil {
			fmt.Fprintln(out, card)
		}
	}
}

// runChecks loads the graph, runs the checks, and renders the merged report.
// passMsg is shown on a clean run.
func runChecks(cmd *cobra.Command, passMsg string, checks ...report.Check) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	return renderReport(cmd, report.Run(g, checks...), passMsg)
}

// renderReport prints every violation and the final verdict. A non-empty
// report yields an ExitError with code 1; rendering never swallows
// violations behind the first one.
func renderReport(cmd *cobra.Command, rep report.Report, passMsg string) error {
	out := cmd.OutOrStdout()

	if rep.OK() {
		fmt.Fprintln(out, SuccessStyle.Render("✓ ")+passMsg)
		return nil
	}

	fmt.Fprintln(out, ErrorStyle.Render(fmt.Sprintf("✗ %d violation(s) found:", len(rep.Violations))))
	fmt.Fprintln(out)
	for i, v := range rep.Violations {
		fmt.Fprintf(out, "  %d. %s %s\n", i+1, RuleStyle.Render("["+string(v.Rule)+"]"), v.Detail)
		if verbose && v.Hash != "" {
			fmt.Fprintf(out, "     %s\n", VerboseStyle.Render("hash: "+v.Hash))
		}
	}
	fmt.Fprintln(out)

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: fmt.Errorf("%d violation(s) found", len(rep.Violations))}
}
