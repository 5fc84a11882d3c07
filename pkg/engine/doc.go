// Package engine runs one envtrim pass over an installed tree.
//
// Run is the single entry point. Everything it needs arrives in Options,
// including the effective configuration and the runtime version, so two runs
// with the same Options behave the same. The order is fixed: probe (when
// asked), rehome into every consumer directory, then prune. Libraries are
// therefore copied out of the system directory before any rule can delete
// them.
//
// Only a missing tree root aborts a run once it has started. Bad input
// (unknown platform or profile) is rejected before anything is touched.
package engine
