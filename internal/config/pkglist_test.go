// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"envlint-cli/internal/issue"
	"envlint-cli/internal/testutil"
)

func TestReadPackageList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "approved.txt")
	testutil.MustWriteFile(t, path, `# build tools
gmake
cmake

  ninja
# compilers
gcc
`)

	names, err := ReadPackageList(path)
	if err != nil {
		t.Fatalf("ReadPackageList: %v", err)
	}

	want := []string{"gmake", "cmake", "ninja", "gcc"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d: %v", len(want), len(names), names)
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], name)
		}
	}
}

func TestReadPackageListMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadPackageList(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected actionable error, got %T", err)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions on the error")
	}
}

func TestReadPackageListEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.txt")
	testutil.MustWriteFile(t, path, "# only a comment\n\n")

	names, err := ReadPackageList(path)
	if err != nil {
		t.Fatalf("ReadPackageList: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}

func TestMergePackageNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "extra.txt")
	testutil.MustWriteFile(t, path, "fromfile\n")

	t.Run("inline and file", func(t *testing.T) {
		t.Parallel()
		names, err := MergePackageNames([]string{"inline"}, path)
		if err != nil {
			t.Fatalf("MergePackageNames: %v", err)
		}
		if len(names) != 2 || names[0] != "inline" || names[1] != "fromfile" {
			t.Errorf("unexpected merge result: %v", names)
		}
	})

	t.Run("inline only", func(t *testing.T) {
		t.Parallel()
		names, err := MergePackageNames([]string{"a", "b"}, "")
		if err != nil {
			t.Fatalf("MergePackageNames: %v", err)
		}
		if len(names) != 2 {
			t.Errorf("unexpected merge result: %v", names)
		}
	})

	t.Run("file error propagates", func(t *testing.T) {
		t.Parallel()
		if _, err := MergePackageNames(nil, filepath.Join(t.TempDir(), "absent.txt")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
