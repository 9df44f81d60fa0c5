// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bufio"
	"os"
	"strings"

	"envlint-cli/internal/issue"
)

// ReadPackageList reads a newline-delimited package list file. Blank lines
// and lines starting with '#' are ignored; surrounding whitespace is
// trimmed. The returned slice preserves file order; duplicate entries are
// left to the caller's set to collapse.
func ReadPackageList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read package list").
			WithResource(path).
			WithSuggestion("Check the path passed to --pkgs-from-file").
			WithSuggestion("Check the file permissions").
			Wrap(err).
			BuildError()
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read package list").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	return names, nil
}

// MergePackageNames merges inline names with an optional file-sourced list.
// An empty filePath skips the file. Duplicates across the two sources are
// harmless: the validators' sets collapse them.
func MergePackageNames(inline []string, filePath string) ([]string, error) {
	names := make([]string, 0, len(inline))
	names = append(names, inline...)
	if filePath != "" {
		fromFile, err := ReadPackageList(filePath)
		if err != nil {
			return nil, err
		}
		names = append(names, fromFile...)
	}
	return names, nil
}
