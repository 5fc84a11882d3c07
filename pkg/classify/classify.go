package classify

import (
	"strings"

	"github.com/arthur-debert/envtrim/pkg/platform"
)

// Classification is the verdict for one file name.
type Classification int

const (
	NonEssential Classification = iota
	Essential
)

func (c Classification) String() string {
	if c == Essential {
		return "essential"
	}
	return "non-essential"
}

// Classify returns Essential when filename is a shared library for c whose
// stem starts with one of c.EssentialPrefixes.
func Classify(filename string, c platform.Capability) Classification {
	if _, ok := MatchingPrefix(filename, c); ok {
		return Essential
	}
	return NonEssential
}

// MatchingPrefix returns the first allow-list prefix that accepts filename.
func MatchingPrefix(filename string, c platform.Capability) (string, bool) {
	stem, ok := c.Stem(filename)
	if !ok {
		return "", false
	}
	stem = c.Fold(stem)
	for _, prefix := range c.EssentialPrefixes {
		if prefix != "" && strings.HasPrefix(stem, c.Fold(prefix)) {
			return prefix, true
		}
	}
	return "", false
}

// IsLibrary reports whether filename carries c's shared-library suffix.
func IsLibrary(filename string, c platform.Capability) bool {
	return c.IsLibrary(filename)
}
