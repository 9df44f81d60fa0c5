// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for envlint.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"envlint-cli/internal/config"
	"envlint-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// envDir overrides the environment directory from the config
	envDir string

	// cfg is the loaded tool configuration, resolved once before any
	// command runs. Never nil after initRootConfig.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "envlint",
		Short: "Validate and prefetch concretized package environments",
		Long: TitleStyle.Render("envlint") + SubtitleStyle.Render(" - environment validation for package managers") + `

envlint inspects a concretized package-manager environment (a manifest plus
its lockfile) and enforces global policy over the resolved dependency graph:
no duplicate package instances, restricted compiler usage, and an explicit
allow list of installable packages. It can also prefetch Go and Cargo
dependencies for offline builds.

envlint never installs, resolves, or mutates anything — it reads the
environment and reports.

` + SubtitleStyle.Render("Examples:") + `
  envlint validate check-duplicates              Find duplicate packages
  envlint validate compilers gcc                 Allow only gcc toolchains
  envlint validate check-approved-pkgs \
      --pkgs-from-file approved.txt              Enforce an approved list
  envlint fetch-deps go                          Prefetch Go modules`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/envlint/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envDir, "env", "", "environment directory (default from config, falling back to \".\")")

	// Add subcommands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(fetchDepsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// fang.Execute for enhanced Cobra styling; version passed via
	// fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file and ENVLINT_* env variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Always surface config loading errors; validation must not run
		// against half-applied settings silently.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose mode shows the chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// environmentDir resolves the environment directory: the --env flag wins,
// then the config value.
func environmentDir() string {
	if envDir != "" {
		return envDir
	}
	return cfg.Environment
}
