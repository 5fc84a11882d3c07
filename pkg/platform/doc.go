// Package platform holds the capability table that every other envtrim
// component consults instead of branching on the operating system.
//
// A Capability describes one platform's shared-library naming convention
// (extension and where the version number sits), whether its filesystem
// folds case, how library candidates are enumerated, where the system
// library directory and the consumer package live inside an installed tree,
// and the ordered allow-list of essential library name prefixes.
//
// The defaults below are overridable from configuration; adding a platform
// or retuning one is a table edit, never new branching logic.
package platform
