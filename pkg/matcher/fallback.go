package matcher

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/rs/zerolog"
)

// Fallback matches without a glob library. See the package documentation for
// the subset of syntax it understands.
type Fallback struct {
	logger zerolog.Logger
}

// NewFallback returns a library-free matcher.
func NewFallback() *Fallback {
	return &Fallback{logger: logging.GetLogger("matcher.fallback")}
}

// Validate reports whether pattern is inside the supported subset.
func (f *Fallback) Validate(pattern string) error {
	for _, seg := range strings.Split(normalize(pattern), "/") {
		if seg == "**" {
			continue
		}
		if strings.ContainsAny(seg, "?[]{}") || strings.Count(seg, "*") > 1 {
			return errors.Newf(errors.ErrUnsupportedPattern,
				"segment %q is not supported by the fallback matcher", seg).
				WithDetail("pattern", pattern)
		}
	}
	return nil
}

// Match implements Matcher.
func (f *Fallback) Match(root, pattern string) []string {
	if !isDir(root) {
		return nil
	}
	if err := f.Validate(pattern); err != nil {
		f.logger.Warn().Err(err).Msg("Skipping pattern")
		return nil
	}

	norm := normalize(pattern)
	if norm == "" {
		return nil
	}

	var rel []string
	f.walk(root, "", strings.Split(norm, "/"), &rel)
	return absolute(root, rel)
}

// walk matches segs against the directory at root/prefix, appending slash
// paths relative to root.
func (f *Fallback) walk(root, prefix string, segs []string, out *[]string) {
	seg, rest := segs[0], segs[1:]

	if seg == "**" {
		if len(rest) == 0 {
			f.descendants(root, prefix, out)
			return
		}
		f.walk(root, prefix, rest, out)
		for _, e := range f.readDir(root, prefix) {
			if e.IsDir() {
				f.walk(root, join(prefix, e.Name()), segs, out)
			}
		}
		return
	}

	if !strings.Contains(seg, "*") {
		rel := join(prefix, seg)
		full := filepath.Join(root, filepath.FromSlash(rel))
		if len(rest) == 0 {
			if _, err := os.Lstat(full); err == nil {
				*out = append(*out, rel)
			}
		} else if isDir(full) {
			f.walk(root, rel, rest, out)
		}
		return
	}

	for _, e := range f.readDir(root, prefix) {
		if !matchSegment(seg, e.Name()) {
			continue
		}
		rel := join(prefix, e.Name())
		if len(rest) == 0 {
			*out = append(*out, rel)
		} else if isDir(filepath.Join(root, filepath.FromSlash(rel))) {
			f.walk(root, rel, rest, out)
		}
	}
}

func (f *Fallback) descendants(root, prefix string, out *[]string) {
	for _, e := range f.readDir(root, prefix) {
		rel := join(prefix, e.Name())
		*out = append(*out, rel)
		if e.IsDir() {
			f.descendants(root, rel, out)
		}
	}
}

func (f *Fallback) readDir(root, prefix string) []os.DirEntry {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(prefix)))
	if err != nil {
		if !errors.IsMissing(err) {
			f.logger.Debug().Err(err).Str("dir", prefix).Msg("Cannot read directory")
		}
		return nil
	}
	return entries
}

// matchSegment handles exact names and a single star: `*`, `*.so`, `lib*`,
// `lib*.dylib`.
func matchSegment(seg, name string) bool {
	idx := strings.IndexByte(seg, '*')
	if idx < 0 {
		return seg == name
	}
	prefix, suffix := seg[:idx], seg[idx+1:]
	return len(name) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(name, prefix) &&
		strings.HasSuffix(name, suffix)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
