// SPDX-License-Identifier: MPL-2.0

// Package validate implements the policy checks run over a concretized
// dependency graph: duplicate package detection, compiler usage
// restrictions, and the approved-package allow list. Each check performs a
// single deterministic traversal and reports violations in first-discovery
// order.
package validate
