// Package matcher resolves glob patterns against a real directory tree.
//
// Patterns are slash-separated and relative to a root:
//
//   - `*` matches any run of characters inside one path segment
//   - `**` matches zero or more whole segments
//
// A missing root or a missing intermediate segment yields an empty result,
// never an error. The pruner and the rehomer rely on this: a rule that names
// a directory a previous rule already removed simply matches nothing.
//
// Glob is the primary implementation and is backed by doublestar. Fallback
// walks the tree itself and exists for environments where the glob library
// cannot be used.
//
// # Fallback limitations
//
// Fallback supports `**` (recursive descent), exact segments, and at most one
// `*` per segment (`*.so`, `lib*`, `lib*.dylib`). Segments with several
// stars, `?`, character classes `[...]` or alternations `{a,b}` are rejected
// by Validate with UNSUPPORTED_PATTERN; Match logs a warning and returns no
// paths for them rather than guessing.
package matcher
