// Package prune interprets a rule profile against an installed tree.
//
// For every pattern that applies to the current platform, in declaration
// order, the pruner resolves matches, filters them by kind, and deletes the
// ones no protect predicate accepts. Directories are deleted post-order,
// children before their parent. A protected descendant survives together
// with its ancestors, so protection dominates deny even inside a matched
// directory.
//
// Per-item errors never stop a pass. Paths that vanished between listing and
// acting are recorded as skipped; permission and I/O errors as failures.
// Deletion is idempotent, so a second pass over a pruned tree removes nothing.
package prune
