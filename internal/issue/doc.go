// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types and a rendered help catalog
// for the fatal, structural failures envlint can hit: environments that are
// not concretized, unreadable package lists, malformed lockfiles. Policy
// violations found by the validators are not issues — they are data records
// collected into reports.
package issue
