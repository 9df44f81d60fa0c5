// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	EnvironmentNotConcretizedId Id = iota + 1
	LockfileInvalidId
	ConfigLoadFailedId
	PackageListUnreadableId
	FetchToolNotFoundId
)

type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to look up the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	environmentNotConcretizedIssue = &Issue{
		id: EnvironmentNotConcretizedId,
		mdMsg: `
# Environment is not concretized!

Validation needs a fully concretized environment: every root spec in the
manifest must have a resolved entry in the lockfile.

## Things you can try:
- Concretize the environment with your package manager, e.g.:
~~~
$ spack concretize
~~~

- Check that you are pointing at the right environment directory:
~~~
$ envlint --env /path/to/env validate check-duplicates
~~~

- If you just edited the manifest, re-concretize so the lockfile catches up.`,
	}

	lockfileInvalidIssue = &Issue{
		id: LockfileInvalidId,
		mdMsg: `
# Lockfile is malformed!

The environment lockfile could not be parsed or failed schema validation.

## Common causes:
- A partially written lockfile from an interrupted concretization
- Hand edits to the lockfile
- A lockfile produced by an incompatible package-manager version

## Things you can try:
- Re-concretize the environment to regenerate the lockfile
- Restore the lockfile from version control`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the envlint configuration file.

## Configuration file locations:
- Linux: ~/.config/envlint/config.yaml
- macOS: ~/Library/Application Support/envlint/config.yaml
- Windows: %APPDATA%\envlint\config.yaml

## Things you can try:
- Check the YAML syntax of the config file
- Remove the config file to fall back to defaults
- Pass an explicit file with --config

## Example configuration:
~~~yaml
environment: ./env
ignore_packages:
  - hdf5
allowed_compilers:
  - gcc
approved_packages_file: approved.txt
~~~`,
	}

	packageListUnreadableIssue = &Issue{
		id: PackageListUnreadableId,
		mdMsg: `
# Could not read the package list file!

A package list file is newline-delimited package names. Blank lines and
lines starting with '#' are ignored.

## Example:
~~~
# build tools
gmake
cmake
ninja
~~~

## Things you can try:
- Check the path passed to --pkgs-from-file
- Check the file permissions`,
	}

	fetchToolNotFoundIssue = &Issue{
		id: FetchToolNotFoundId,
		mdMsg: `
# Fetch tool not found!

Prefetching dependencies shells out to the ecosystem's own tool
('go' for Go modules, 'cargo' for Rust crates), taken from the spec's
toolchain dependency or from your PATH.

## Things you can try:
- Install the toolchain into the environment and re-concretize
- Ensure the tool is on your PATH
- Drop --use-env-go / --use-env-cargo to allow the PATH fallback`,
	}

	issues = map[Id]*Issue{
		environmentNotConcretizedIssue.Id(): environmentNotConcretizedIssue,
		lockfileInvalidIssue.Id():           lockfileInvalidIssue,
		configLoadFailedIssue.Id():          configLoadFailedIssue,
		packageListUnreadableIssue.Id():     packageListUnreadableIssue,
		fetchToolNotFoundIssue.Id():         fetchToolNotFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
