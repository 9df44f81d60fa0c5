// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"envlint-cli/internal/config"
	"envlint-cli/internal/validate"

	"github.com/spf13/cobra"
)

// approvedInline and approvedPkgsFile hold the flag values for
// check-approved-pkgs.
var (
	approvedInline   []string
	approvedPkgsFile string
)

// validateApprovedCmd represents the validate check-approved-pkgs command
var validateApprovedCmd = &cobra.Command{
	Use:   "check-approved-pkgs",
	Short: "Require every package in the graph to be on an approved list",
	Long: `Require every package in the graph to be on an approved list.

Every spec — roots and transitive dependencies alike — must have its
package name in the approved list. The check is name-only: versions,
variants, and hashes play no role.

The list comes from --packages (repeatable) or --pkgs-from-file, falling
back to approved_packages_file in the config file when neither flag is
given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pkgsFile := approvedPkgsFile
		if len(approvedInline) == 0 && pkgsFile == "" {
			pkgsFile = cfg.ApprovedPackagesFile
		}
		if len(approvedInline) == 0 && pkgsFile == "" {
			cmd.SilenceUsage = true
			return fmt.Errorf("no approved package list given: pass --packages or --pkgs-from-file, or set approved_packages_file in the config file")
		}

		approved, err := config.MergePackageNames(approvedInline, pkgsFile)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}

		return runChecks(cmd, "all packages are on the approved list",
			validate.ApprovedPackages(validate.NewNameSet(approved...)))
	},
}

func init() {
	validateApprovedCmd.Flags().StringSliceVar(&approvedInline, "packages", nil,
		"approved package name (repeatable)")
	validateApprovedCmd.Flags().StringVar(&approvedPkgsFile, "pkgs-from-file", "",
		"file with approved package names, one per line")
	validateApprovedCmd.MarkFlagsMutuallyExclusive("packages", "pkgs-from-file")
}
