package rules

import (
	"io/fs"
	"path"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/platform"
)

// Kind restricts a pattern to files, directories, or both.
type Kind string

const (
	KindAny  Kind = "any"
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Pattern is one deny entry of a rule table.
type Pattern struct {
	Glob     string `koanf:"glob" toml:"glob" yaml:"glob"`
	Kind     Kind   `koanf:"kind" toml:"kind,omitempty" yaml:"kind,omitempty"`
	Platform string `koanf:"platform" toml:"platform,omitempty" yaml:"platform,omitempty"`
}

// AppliesTo reports whether the pattern's platform scope includes id.
func (p Pattern) AppliesTo(id platform.ID) bool {
	scope := strings.ToLower(strings.TrimSpace(p.Platform))
	if scope == "" || scope == "all" {
		return true
	}
	parsed, err := platform.Parse(scope)
	return err == nil && parsed == id
}

// Accepts filters a match by kind. info must come from Lstat: a symlink to
// a directory counts as a file and is removed as a link, never followed.
func (p Pattern) Accepts(info fs.FileInfo) bool {
	switch p.kind() {
	case KindDir:
		return info.IsDir()
	case KindFile:
		return !info.IsDir()
	default:
		return true
	}
}

func (p Pattern) kind() Kind {
	if p.Kind == "" {
		return KindAny
	}
	return p.Kind
}

// ProtectMode selects how a Protect fragment is compared.
type ProtectMode string

const (
	ProtectContains ProtectMode = "contains"
	ProtectUnder    ProtectMode = "under"
)

// Protect keeps any path it accepts.
type Protect struct {
	Fragment string      `koanf:"fragment" toml:"fragment" yaml:"fragment"`
	Mode     ProtectMode `koanf:"mode" toml:"mode,omitempty" yaml:"mode,omitempty"`
}

// Accepts tests rel, a slash-separated path relative to the tree root.
func (p Protect) Accepts(rel string) bool {
	frag := cleanFragment(p.Fragment)
	if frag == "" {
		return false
	}
	if p.Mode == ProtectUnder {
		frag = strings.Trim(frag, "/")
		return rel == frag || strings.HasPrefix(rel, frag+"/")
	}
	return strings.Contains(rel, frag)
}

// Shields reports whether some descendant of dir might be accepted, in which
// case a directory delete has to inspect its children one by one.
func (p Protect) Shields(dir string) bool {
	frag := cleanFragment(p.Fragment)
	if frag == "" {
		return false
	}
	if p.Mode == ProtectUnder {
		return strings.HasPrefix(strings.Trim(frag, "/")+"/", dir+"/")
	}
	return true
}

func cleanFragment(f string) string {
	f = strings.ReplaceAll(strings.TrimSpace(f), "\\", "/")
	if f == "" {
		return ""
	}
	// path.Clean drops a leading "/" that "contains" fragments rely on.
	lead := strings.HasPrefix(f, "/")
	trail := strings.HasSuffix(f, "/")
	f = strings.Trim(path.Clean("/"+f), "/")
	if lead {
		f = "/" + f
	}
	if trail && f != "" {
		f += "/"
	}
	return f
}

// Protects is an ordered set of protect predicates.
type Protects []Protect

// Match returns the first predicate accepting rel.
func (ps Protects) Match(rel string) (Protect, bool) {
	for _, p := range ps {
		if p.Accepts(rel) {
			return p, true
		}
	}
	return Protect{}, false
}

// Shields reports whether any predicate might accept a descendant of dir.
func (ps Protects) Shields(dir string) bool {
	for _, p := range ps {
		if p.Shields(dir) {
			return true
		}
	}
	return false
}
