package platform

import (
	"runtime"
	"sort"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/errors"
)

// ID identifies a platform. The set is closed: linux, darwin, windows.
type ID string

const (
	Linux   ID = "linux"
	Darwin  ID = "darwin"
	Windows ID = "windows"
)

// Enumeration selects how library candidates are discovered.
type Enumeration string

const (
	// Curated enumerates only a fixed list of name globs, bounding copy volume
	// where libraries are large and numerous.
	Curated Enumeration = "curated"
	// Broad enumerates recursively using wide globs.
	Broad Enumeration = "broad"
)

// VersionPlacement says where a library's version number sits relative to
// its extension.
type VersionPlacement string

const (
	VersionAfter  VersionPlacement = "after"  // libtiff.so.6.0.1
	VersionBefore VersionPlacement = "before" // libtiff.6.dylib
	VersionNone   VersionPlacement = "none"   // tiff.dll
)

var aliases = map[string]ID{
	"linux":   Linux,
	"darwin":  Darwin,
	"macos":   Darwin,
	"osx":     Darwin,
	"mac":     Darwin,
	"windows": Windows,
	"win32":   Windows,
	"win":     Windows,
}

// Parse normalises a collaborator-supplied platform identifier.
func Parse(s string) (ID, error) {
	id, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported platform %q", s).
			WithDetail("supported", Names())
	}
	return id, nil
}

// Current returns the platform the process runs on.
func Current() ID {
	return ID(runtime.GOOS)
}

// Names lists the canonical platform identifiers in sorted order.
func Names() []string {
	return []string{string(Darwin), string(Linux), string(Windows)}
}

// Capability is everything envtrim needs to know about one platform.
type Capability struct {
	Platform          ID               `koanf:"-" toml:"-"`
	LibraryExtension  string           `koanf:"library_extension" toml:"library_extension"`
	VersionPlacement  VersionPlacement `koanf:"version_placement" toml:"version_placement"`
	CaseInsensitive   bool             `koanf:"case_insensitive" toml:"case_insensitive"`
	Enumeration       Enumeration      `koanf:"enumeration" toml:"enumeration"`
	Candidates        []string         `koanf:"candidates" toml:"candidates"`
	SystemLibDir      string           `koanf:"system_lib_dir" toml:"system_lib_dir"`
	ConsumerDir       string           `koanf:"consumer_dir" toml:"consumer_dir"`
	PrivateLibDir     string           `koanf:"private_lib_dir" toml:"private_lib_dir"`
	EssentialPrefixes []string         `koanf:"essential_prefixes" toml:"essential_prefixes"`
}

// Table maps platform identifiers to capabilities.
type Table map[ID]Capability

// Lookup returns the capability for id.
func (t Table) Lookup(id ID) (Capability, error) {
	c, ok := t[id]
	if !ok {
		return Capability{}, errors.Newf(errors.ErrInvalidInput, "no capability registered for platform %q", id)
	}
	c.Platform = id
	return c, nil
}

// IDs returns the registered platforms in sorted order.
func (t Table) IDs() []ID {
	ids := make([]ID, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Fold lower-cases s on platforms whose filesystems ignore case.
func (c Capability) Fold(s string) string {
	if c.CaseInsensitive {
		return strings.ToLower(s)
	}
	return s
}

// foldBytes lower-cases ASCII letters only, so byte offsets in the result
// are valid in s. Filenames are not guaranteed to be UTF-8.
func (c Capability) foldBytes(s string) string {
	if !c.CaseInsensitive {
		return s
	}
	b := []byte(s)
	for i, ch := range b {
		if 'A' <= ch && ch <= 'Z' {
			b[i] = ch + 'a' - 'A'
		}
	}
	return string(b)
}

// Stem strips the shared-library extension and version suffix from name.
// ok is false when name does not carry this platform's library suffix.
func (c Capability) Stem(name string) (stem string, ok bool) {
	ext := c.foldBytes(c.LibraryExtension)
	if ext == "" {
		return "", false
	}
	folded := c.foldBytes(name)

	switch c.VersionPlacement {
	case VersionAfter:
		idx := strings.LastIndex(folded, ext)
		if idx <= 0 || !isVersionTail(folded[idx+len(ext):]) {
			return "", false
		}
		return name[:idx], true
	case VersionBefore:
		if !strings.HasSuffix(folded, ext) || len(folded) == len(ext) {
			return "", false
		}
		return trimVersionTail(name[:len(name)-len(ext)]), true
	default:
		if !strings.HasSuffix(folded, ext) || len(folded) == len(ext) {
			return "", false
		}
		return name[:len(name)-len(ext)], true
	}
}

// IsLibrary reports whether name carries this platform's shared-library suffix.
func (c Capability) IsLibrary(name string) bool {
	_, ok := c.Stem(name)
	return ok
}

// isVersionTail accepts "" or a run of ".N" groups.
func isVersionTail(s string) bool {
	for s != "" {
		if s[0] != '.' {
			return false
		}
		s = s[1:]
		n := 0
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		if n == 0 {
			return false
		}
		s = s[n:]
	}
	return true
}

// trimVersionTail removes trailing ".N" groups: "libtiff.6" -> "libtiff".
func trimVersionTail(s string) string {
	for {
		idx := strings.LastIndexByte(s, '.')
		if idx <= 0 {
			return s
		}
		digits := s[idx+1:]
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return s
		}
		s = s[:idx]
	}
}
