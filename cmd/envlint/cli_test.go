// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"envlint-cli/internal/config"
	"envlint-cli/internal/testutil"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const cleanEnvLockfile = `{
  "roots": [{"hash": "apphash000000000", "spec": "app"}],
  "concrete_specs": {
    "apphash000000000": {
      "name": "app",
      "version": "1.0",
      "dependencies": [
        {"name": "zlib", "hash": "zlibhash00000000"}
      ]
    },
    "zlibhash00000000": {"name": "zlib", "version": "1.3.1"}
  }
}`

const duplicateEnvLockfile = `{
  "roots": [
    {"hash": "app1hash00000000", "spec": "app1"},
    {"hash": "app2hash00000000", "spec": "app2"}
  ],
  "concrete_specs": {
    "app1hash00000000": {
      "name": "app1",
      "version": "1.0",
      "dependencies": [{"name": "zlib", "hash": "zlibold000000000"}]
    },
    "app2hash00000000": {
      "name": "app2",
      "version": "1.0",
      "dependencies": [{"name": "zlib", "hash": "zlibnew000000000"}]
    },
    "zlibold000000000": {"name": "zlib", "version": "1.2.13"},
    "zlibnew000000000": {"name": "zlib", "version": "1.3.1"}
  }
}`

// writeTestEnv creates an environment directory with the given manifest and
// lockfile. An empty lockfile string skips the lockfile entirely.
func writeTestEnv(t *testing.T, manifest, lockfile string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "env.yaml"), manifest)
	if lockfile != "" {
		testutil.MustWriteFile(t, filepath.Join(dir, "env.lock"), lockfile)
	}
	return dir
}

// runCLI executes the root command with args against a pristine config and
// returns the command error plus everything written to stdout/stderr.
// Package-level command state is reset so tests stay independent.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	cfg = config.DefaultConfig()
	duplicatesIgnore = nil
	compilerUsagePkgsFile = ""
	approvedInline = nil
	approvedPkgsFile = ""
	envDir = ""
	resetFlagChanged(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlagChanged clears the "flag was set" markers on every command in the
// tree so cobra's flag-group checks don't see values from a previous run.
func resetFlagChanged(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	for _, sub := range cmd.Commands() {
		resetFlagChanged(sub)
	}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	return exitErr.Code
}

func TestCheckDuplicatesClean(t *testing.T) {
	dir := writeTestEnv(t, "specs:\n  - app\n", cleanEnvLockfile)

	out, err := runCLI(t, "validate", "check-duplicates", "--env", dir)
	if err != nil {
		t.Fatalf("expected success, got %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(out, "no duplicate packages found") {
		t.Errorf("missing pass message:\n%s", out)
	}
}

func TestCheckDuplicatesViolation(t *testing.T) {
	dir := writeTestEnv(t, "specs:\n  - app1\n  - app2\n", duplicateEnvLockfile)

	out, err := runCLI(t, "validate", "check-duplicates", "--env", dir)
	if code := exitCode(t, err); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out, "zlib") || !strings.Contains(out, "duplicate-packages") {
		t.Errorf("violation not reported:\n%s", out)
	}
	// Both concrete instances are shown.
	for _, instance := range []string{"zlib@1.2.13", "zlib@1.3.1"} {
		if !strings.Contains(out, instance) {
			t.Errorf("output missing instance %s:\n%s", instance, out)
		}
	}
}

func TestCheckDuplicatesIgnoreFlag(t *testing.T) {
	dir := writeTestEnv(t, "specs:\n  - app1\n  - app2\n", duplicateEnvLockfile)

	out, err := runCLI(t, "validate", "check-duplicates", "--env", dir, "--ignore-package", "zlib")
	if err != nil {
		t.Fatalf("expected success with zlib ignored, got %v\noutput:\n%s", err, out)
	}
}

func TestValidateNotConcretized(t *testing.T) {
	dir := writeTestEnv(t, "specs:\n  - app\n", "")

	out, err := runCLI(t, "validate", "check-duplicates", "--env", dir)
	if code := exitCode(t, err); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out, "not concretized") {
		t.Errorf("missing concretization hint:\n%s", out)
	}
}

func TestCheckApprovedPkgs(t *testing.T) {
	dir := writeTestEnv(t, "specs:\n  - app\n", cleanEnvLockfile)
	listPath := filepath.Join(t.TempDir(), "approved.txt")
	testutil.MustWriteFile(t, listPath, "# approved\napp\nzlib\n")

	t.Run("all approved", func(t *testing.T) {
		out, err := runCLI(t, "validate", "check-approved-pkgs", "--env", dir, "--pkgs-from-file", listPath)
		if err != nil {
			t.Fatalf("expected success, got %v\noutput:\n%s", err, out)
		}
	})

	t.Run("unapproved package", func(t *testing.T) {
		shortPath := filepath.Join(t.TempDir(), "short.txt")
		testutil.MustWriteFile(t, shortPath, "app\n")

		out, err := runCLI(t, "validate", "check-approved-pkgs", "--env", dir, "--pkgs-from-file", shortPath)
		if code := exitCode(t, err); code != 1 {
			t.Fatalf("expected exit code 1, got %d", code)
		}
		if !strings.Contains(out, "zlib") || !strings.Contains(out, "approved-packages") {
			t.Errorf("violation not reported:\n%s", out)
		}
	})

	t.Run("inline packages", func(t *testing.T) {
		_, err := runCLI(t, "validate", "check-approved-pkgs", "--env", dir, "--packages", "app", "--packages", "zlib")
		if err != nil {
			t.Fatalf("expected success with inline list, got %v", err)
		}
	})

	t.Run("no list given", func(t *testing.T) {
		_, err := runCLI(t, "validate", "check-approved-pkgs", "--env", dir)
		if err == nil {
			t.Fatal("expected error without any approved list")
		}
	})
}

func TestAllowPkgsForCompiler(t *testing.T) {
	lockfile := `{
  "roots": [{"hash": "gmakehash0000000", "spec": "gmake"}],
  "concrete_specs": {
    "gmakehash0000000": {
      "name": "gmake",
      "version": "4.4",
      "dependencies": [
        {"name": "gcc", "hash": "gcchash000000000", "virtuals": ["c"]}
      ]
    },
    "gcchash000000000": {"name": "gcc", "version": "13.2.0"}
  }
}`
	dir := writeTestEnv(t, "specs:\n  - gmake\n", lockfile)

	t.Run("user allowed", func(t *testing.T) {
		_, err := runCLI(t, "validate", "allow-pkgs-for-compiler", "gcc", "gmake", "--env", dir)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("user not allowed", func(t *testing.T) {
		out, err := runCLI(t, "validate", "allow-pkgs-for-compiler", "gcc", "--env", dir)
		if code := exitCode(t, err); code != 1 {
			t.Fatalf("expected exit code 1, got %d", code)
		}
		if !strings.Contains(out, "gmake") {
			t.Errorf("violation not reported:\n%s", out)
		}
	})

	t.Run("different compiler unaffected", func(t *testing.T) {
		_, err := runCLI(t, "validate", "allow-pkgs-for-compiler", "clang", "--env", dir)
		if err != nil {
			t.Fatalf("gcc usage must not trip the clang check: %v", err)
		}
	})
}

func TestValidateCompilers(t *testing.T) {
	lockfile := `{
  "roots": [{"hash": "apphash000000000", "spec": "app"}],
  "concrete_specs": {
    "apphash000000000": {
      "name": "app",
      "version": "1.0",
      "dependencies": [
        {"name": "clang", "hash": "clanghash0000000", "virtuals": ["c", "cxx"]}
      ]
    },
    "clanghash0000000": {"name": "clang", "version": "18.1.0"}
  }
}`
	dir := writeTestEnv(t, "specs:\n  - app\n", lockfile)

	t.Run("provider allowed", func(t *testing.T) {
		_, err := runCLI(t, "validate", "compilers", "clang", "--env", dir)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
	})

	t.Run("provider disallowed", func(t *testing.T) {
		out, err := runCLI(t, "validate", "compilers", "gcc", "--env", dir)
		if code := exitCode(t, err); code != 1 {
			t.Fatalf("expected exit code 1, got %d", code)
		}
		if !strings.Contains(out, "clang") {
			t.Errorf("violation does not name the provider:\n%s", out)
		}
	})

	t.Run("no compilers given", func(t *testing.T) {
		_, err := runCLI(t, "validate", "compilers", "--env", dir)
		if err == nil {
			t.Fatal("expected error without an allowed compiler list")
		}
	})
}

func TestValidateAll(t *testing.T) {
	dir := writeTestEnv(t, "specs:\n  - app1\n  - app2\n", duplicateEnvLockfile)

	out, err := runCLI(t, "validate", "all", "--env", dir)
	if code := exitCode(t, err); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out, "duplicate-packages") {
		t.Errorf("duplicate violation missing:\n%s", out)
	}
	// Unconfigured checks are announced, not silently dropped.
	if !strings.Contains(out, "skipping compiler check") || !strings.Contains(out, "skipping approved-package check") {
		t.Errorf("skip notices missing:\n%s", out)
	}
}
