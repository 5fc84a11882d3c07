// Package classify decides whether a shared library is essential.
//
// Classification is a pure function of a file name and a platform
// capability: the extension and version suffix are stripped, and the stem is
// Essential iff it starts with one of the platform's allow-listed prefixes.
// Case is folded only on platforms whose filesystems are case-insensitive.
//
// # Known failure mode
//
// The classifier never looks inside a binary. It cannot see which libraries a
// consumer will actually load, so a library that is required at runtime but
// missing from the allow-list is classified NonEssential and will not be
// rehomed. Such a false negative shows up only when the consumer fails to
// import; the fix is an allow-list entry in configuration.
package classify
