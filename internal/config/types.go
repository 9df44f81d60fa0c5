// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEnvironmentDir is returned when the environment path is whitespace-only.
	ErrInvalidEnvironmentDir = errors.New("invalid environment directory")
	// ErrInvalidStageDir is returned when the stage directory is whitespace-only.
	ErrInvalidStageDir = errors.New("invalid stage directory")
)

type (
	// Config is the immutable envlint tool configuration. It is resolved
	// once at startup and passed explicitly into every component that needs
	// it; nothing reads ambient process state later.
	Config struct {
		// Environment is the environment directory holding the manifest and
		// lockfile.
		Environment string `mapstructure:"environment"`
		// StageDir is the root of the staged source trees used by fetch.
		StageDir string `mapstructure:"stage_dir"`
		// IgnorePackages are names exempt from the duplicate check.
		IgnorePackages []string `mapstructure:"ignore_packages"`
		// AllowedCompilers is the default allow list for `validate all`.
		AllowedCompilers []string `mapstructure:"allowed_compilers"`
		// ApprovedPackagesFile is the default package list for `validate all`.
		ApprovedPackagesFile string `mapstructure:"approved_packages_file"`
		// Fetch holds the dependency-prefetch defaults.
		Fetch FetchConfig `mapstructure:"fetch"`
	}

	// FetchConfig configures the dependency prefetch commands.
	FetchConfig struct {
		// UseEnvGo restricts the Go fetch to the environment's own go
		// toolchain, disabling the PATH fallback.
		UseEnvGo bool `mapstructure:"use_env_go"`
		// UseEnvCargo restricts the Cargo fetch to the environment's own
		// rust toolchain, disabling the PATH fallback.
		UseEnvCargo bool `mapstructure:"use_env_cargo"`
	}
)

// DefaultConfig returns the built-in defaults: the current directory as the
// environment, a local stage tree, and no policy lists configured.
func DefaultConfig() *Config {
	return &Config{
		Environment: ".",
		StageDir:    "stage",
	}
}

// Validate checks the configuration for values that can never work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Environment) == "" {
		return fmt.Errorf("%w: must not be blank", ErrInvalidEnvironmentDir)
	}
	if strings.TrimSpace(c.StageDir) == "" {
		return fmt.Errorf("%w: must not be blank", ErrInvalidStageDir)
	}
	return nil
}
