// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"envlint-cli/internal/config"
	"envlint-cli/internal/validate"

	"github.com/spf13/cobra"
)

// compilerUsagePkgsFile holds the --pkgs-from-file flag value for
// allow-pkgs-for-compiler.
var compilerUsagePkgsFile string

// validateCompilerUsageCmd represents the validate allow-pkgs-for-compiler command
var validateCompilerUsageCmd = &cobra.Command{
	Use:   "allow-pkgs-for-compiler COMPILER [PKG]...",
	Short: "Restrict which packages may be built with a compiler",
	Long: `Restrict which packages may be built with a compiler.

Every spec whose active C, C++, or Fortran provider resolves to COMPILER
must have its name in the allowed list, given inline as PKG arguments
and/or via --pkgs-from-file. Specs without any toolchain provider are
exempt.

The compiler is matched through the lockfile's typed provider edges, not
by package name, so only specs that actually compile with COMPILER are
checked.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compiler := args[0]
		allowed, err := config.MergePackageNames(args[1:], compilerUsagePkgsFile)
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}

		return runChecks(cmd,
			fmt.Sprintf("all packages built with %s are allowed", compiler),
			validate.CompilerUsage(compiler, validate.NewNameSet(allowed...)))
	},
}

// validateCompilersCmd represents the validate compilers command
var validateCompilersCmd = &cobra.Command{
	Use:   "compilers [COMPILER]...",
	Short: "Restrict which compilers may appear in the environment",
	Long: `Restrict which compilers may appear in the environment.

Every C, C++, and Fortran provider declared anywhere in the graph must be
one of the allowed COMPILER names, given as arguments or configured under
allowed_compilers in the config file. Inline arguments extend the
configured list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		allowed := validate.NewNameSet(cfg.AllowedCompilers...)
		allowed.Insert(args...)
		if allowed.Len() == 0 {
			cmd.SilenceUsage = true
			return fmt.Errorf("no allowed compilers given: pass them as arguments or set allowed_compilers in the config file")
		}

		return runChecks(cmd, "all compilers in the environment are allowed",
			validate.AllowedCompilers(allowed))
	},
}

func init() {
	validateCompilerUsageCmd.Flags().StringVar(&compilerUsagePkgsFile, "pkgs-from-file", "",
		"file with additional allowed package names, one per line")
}
