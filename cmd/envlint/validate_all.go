// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"envlint-cli/internal/config"
	"envlint-cli/internal/report"
	"envlint-cli/internal/validate"

	"github.com/spf13/cobra"
)

// validateAllCmd represents the validate all command
var validateAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every configured check in one pass",
	Long: `Run every configured check in one pass.

Duplicate detection always runs. The compiler and approved-package checks
run only when configured (allowed_compilers and approved_packages_file in
the config file); unconfigured checks are skipped with a notice. All
checks run to completion and the merged report lists every violation
found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		checks := []report.Check{
			validate.Duplicates(validate.NewNameSet(cfg.IgnorePackages...)),
		}

		if len(cfg.AllowedCompilers) > 0 {
			checks = append(checks, validate.AllowedCompilers(validate.NewNameSet(cfg.AllowedCompilers...)))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("- skipping compiler check: allowed_compilers not configured"))
		}

		if cfg.ApprovedPackagesFile != "" {
			approved, err := config.ReadPackageList(cfg.ApprovedPackagesFile)
			if err != nil {
				cmd.SilenceUsage = true
				return err
			}
			checks = append(checks, validate.ApprovedPackages(validate.NewNameSet(approved...)))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("- skipping approved-package check: approved_packages_file not configured"))
		}

		return runChecks(cmd, "environment passed all configured checks", checks...)
	},
}
