// Package testutil builds throwaway directory trees for tests.
//
// Trees are declared as maps from slash-separated relative paths to file
// content and materialised under t.TempDir(). Snapshot reads a tree back as
// a sorted list so tests can assert on exactly what survived a run.
//
// FaultFS wraps the real filesystem and injects errors for selected
// operations, which is how the prune and rehome tests exercise permission
// failures and refused symlinks without needing root.
package testutil
