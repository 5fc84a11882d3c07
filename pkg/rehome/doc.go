// Package rehome keeps native shared libraries resolvable for an imaging
// binding by copying them into the binding's package-private library
// directory.
//
// A Rehomer enumerates candidate libraries under the distribution's system
// library directory, keeps only those the classify package deems essential,
// and copies them next to the binding (for example PIL/.dylibs on darwin or
// PIL/.libs on linux). Copies are additive: a file already present in the
// private directory is never replaced. Version aliases such as
// libtiff.dylib -> libtiff.6.dylib are created as relative symlinks, or as
// byte copies where the filesystem or privileges refuse links.
//
// Nothing in this package is fatal. Missing directories are recorded as
// skipped and per-file errors as failures in the returned report.
package rehome
