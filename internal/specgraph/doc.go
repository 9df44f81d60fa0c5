// SPDX-License-Identifier: MPL-2.0

// Package specgraph provides read-only access to the dependency graph of a
// concretized package-manager environment. It loads the environment manifest
// and lockfile from disk, links concrete specs into a rooted graph, and
// exposes deterministic traversal queries for the validators and the fetch
// helpers. The package never mutates specs and never resolves anything
// itself; concretization is the host package manager's job.
package specgraph
