// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"envlint-cli/internal/fetch"

	"github.com/spf13/cobra"
)

// fetch-deps flag values.
var (
	fetchStageDir    string
	fetchUseEnvGo    bool
	fetchUseEnvCargo bool
)

// fetchDepsCmd represents the fetch-deps command group
var fetchDepsCmd = &cobra.Command{
	Use:   "fetch-deps",
	Short: "Prefetch language-ecosystem dependencies for offline builds",
	Long: `Prefetch language-ecosystem dependencies for offline builds.

For every spec of the chosen ecosystem in the environment, the matching
tool is run against the spec's staged sources ('go mod download' for Go,
'cargo fetch' for Rust) so a later build needs no network access. The tool
is taken from the spec's own toolchain dependency when present, falling
back to the PATH.

Set GOMODCACHE / CARGO_HOME first if the downloads should land somewhere
other than the tool's default cache.`,
}

// fetchGoCmd represents the fetch-deps go command
var fetchGoCmd = &cobra.Command{
	Use:   "go [PKG]...",
	Short: "Prefetch Go modules for the environment's Go specs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(cmd, fetch.GoModules(), args, fetchUseEnvGo)
	},
}

// fetchRustCmd represents the fetch-deps rust command
var fetchRustCmd = &cobra.Command{
	Use:   "rust [PKG]...",
	Short: "Prefetch Cargo crates for the environment's Rust specs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch(cmd, fetch.CargoCrates(), args, fetchUseEnvCargo)
	},
}

func init() {
	fetchDepsCmd.PersistentFlags().StringVar(&fetchStageDir, "stage-dir", "",
		"root of the staged source trees (default from config)")
	fetchGoCmd.Flags().BoolVar(&fetchUseEnvGo, "use-env-go", false,
		"only use the 'go' toolchain concretized in the environment, never the PATH")
	fetchRustCmd.Flags().BoolVar(&fetchUseEnvCargo, "use-env-cargo", false,
		"only use the 'cargo' toolchain concretized in the environment, never the PATH")

	fetchDepsCmd.AddCommand(fetchGoCmd)
	fetchDepsCmd.AddCommand(fetchRustCmd)
}

// runFetch loads the graph and prefetches dependencies for one ecosystem,
// optionally narrowed to the named packages.
func runFetch(cmd *cobra.Command, eco fetch.Ecosystem, specNames []string, useEnvTool bool) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}

	stageDir := fetchStageDir
	if stageDir == "" {
		stageDir = cfg.StageDir
	}
	if !useEnvTool {
		// Config may still pin the run to the environment toolchain.
		switch eco.Tag {
		case fetch.GoModules().Tag:
			useEnvTool = cfg.Fetch.UseEnvGo
		case fetch.CargoCrates().Tag:
			useEnvTool = cfg.Fetch.UseEnvCargo
		}
	}

	opts := fetch.Options{
		StageDir:   stageDir,
		SpecNames:  specNames,
		UseEnvTool: useEnvTool,
	}
	if err := fetch.Dependencies(cmd.Context(), g, eco, opts, fetch.NewExecRunner()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+fmt.Sprintf("%s dependencies fetched", eco.Tag))
	return nil
}
