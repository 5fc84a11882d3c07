// Package filesystem provides the filesystem seam used by the pruner and the
// rehomer.
//
// Every structural mutation envtrim performs goes through FS, so tests can
// inject failures (unsupported links, permission errors) without needing a
// privileged or exotic real filesystem.
package filesystem
