// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"envlint-cli/internal/validate"

	"github.com/spf13/cobra"
)

// duplicatesIgnore holds the --ignore-package flag values.
var duplicatesIgnore []string

// validateDuplicatesCmd represents the validate check-duplicates command
var validateDuplicatesCmd = &cobra.Command{
	Use:   "check-duplicates",
	Short: "Flag package names concretized more than once",
	Long: `Flag package names concretized more than once.

A healthy environment resolves each package name to exactly one concrete
instance. Two instances of the same name at different hashes usually mean
conflicting version or variant constraints crept into the environment.

Names passed via --ignore-package (repeatable) or listed under
ignore_packages in the config file are exempt. A package reachable through
multiple paths at the same hash is shared, not duplicated, and is never
flagged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ignore := validate.NewNameSet(cfg.IgnorePackages...)
		ignore.Insert(duplicatesIgnore...)

		return runChecks(cmd, "no duplicate packages found",
			validate.Duplicates(ignore))
	},
}

func init() {
	validateDuplicatesCmd.Flags().StringSliceVarP(&duplicatesIgnore, "ignore-package", "i", nil,
		"package name to exempt from duplicate detection (repeatable)")
}
