// Package rules defines prune rule tables.
//
// A Profile is a named, ordered list of deny Patterns plus a set of Protect
// predicates. The pruner interprets any profile the same way; aggressive and
// conservative cleanup differ only in their tables, so adding or tuning a
// policy is a configuration edit:
//
//	[profiles.minimal]
//	description = "aggressive cleanup"
//	rehome = true
//
//	[[profiles.minimal.patterns]]
//	glob = "**/__pycache__"
//	kind = "dir"
//
//	[[profiles.minimal.patterns]]
//	glob = "Library/include"
//	kind = "dir"
//	platform = "windows"
//
//	[[profiles.minimal.protects]]
//	fragment = "/.dylibs"
//
// # Evaluation
//
// Patterns are evaluated in declaration order. Order only affects how the run
// reads in logs: deletion is idempotent, so a path removed by an earlier rule
// simply does not match a later one.
//
// # Protection
//
// A path accepted by any Protect is never deleted, whatever pattern matched
// it. "contains" protects test for a fragment anywhere in the slash-separated
// path relative to the tree root; "under" protects keep a directory and
// everything below it, and are how excluded repositories are expressed.
package rules
