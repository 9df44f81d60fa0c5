// SPDX-License-Identifier: MPL-2.0

// envlint validates concretized package-manager environments and prefetches
// language-ecosystem dependencies for offline builds.
package main

import (
	cmd "envlint-cli/cmd/envlint"
)

func main() {
	cmd.Execute()
}
