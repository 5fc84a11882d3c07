package matcher

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Matcher resolves a pattern relative to root into absolute paths.
type Matcher interface {
	Match(root, pattern string) []string
}

// Glob matches using doublestar.
type Glob struct {
	logger zerolog.Logger
}

// New returns the default matcher.
func New() *Glob {
	return &Glob{logger: logging.GetLogger("matcher.glob")}
}

// Match implements Matcher. Symlinked directories are not followed by `**`.
func (g *Glob) Match(root, pattern string) []string {
	if !isDir(root) {
		g.logger.Debug().Str("root", root).Msg("Match root does not exist")
		return nil
	}

	pattern = normalize(pattern)
	if !doublestar.ValidatePattern(pattern) {
		g.logger.Warn().Str("pattern", pattern).Msg("Invalid glob pattern, matching nothing")
		return nil
	}

	rel, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithNoFollow())
	if err != nil {
		g.logger.Warn().Err(err).Str("pattern", pattern).Msg("Glob failed")
		return nil
	}

	return absolute(root, rel)
}

// normalize makes a pattern slash-separated and relative.
func normalize(pattern string) string {
	pattern = filepath.ToSlash(strings.TrimSpace(pattern))
	for strings.HasPrefix(pattern, "./") {
		pattern = pattern[2:]
	}
	pattern = strings.TrimLeft(pattern, "/")
	return strings.TrimRight(pattern, "/")
}

// absolute joins relative slash paths onto root, drops the root itself,
// de-duplicates and sorts.
func absolute(root string, rel []string) []string {
	seen := make(map[string]struct{}, len(rel))
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		if r == "." || r == "" {
			continue
		}
		p := filepath.Join(root, filepath.FromSlash(r))
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
