package rules

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/platform"
)

// Profile is a named cleanup policy.
type Profile struct {
	Name        string    `koanf:"-" toml:"-" yaml:"name"`
	Description string    `koanf:"description" toml:"description" yaml:"description"`
	Rehome      bool      `koanf:"rehome" toml:"rehome" yaml:"rehome"`
	Patterns    []Pattern `koanf:"patterns" toml:"patterns" yaml:"patterns"`
	Protects    Protects  `koanf:"protects" toml:"protects" yaml:"protects"`
}

// Validate rejects tables the pruner cannot interpret.
func (p Profile) Validate() error {
	for i, pat := range p.Patterns {
		if strings.TrimSpace(pat.Glob) == "" {
			return errors.Newf(errors.ErrConfigValid, "profile %s: pattern %d has empty glob", p.Name, i)
		}
		switch pat.Kind {
		case "", KindAny, KindFile, KindDir:
		default:
			return errors.Newf(errors.ErrConfigValid, "profile %s: pattern %q has unknown kind %q", p.Name, pat.Glob, pat.Kind)
		}
		scope := strings.TrimSpace(pat.Platform)
		if scope != "" && scope != "all" {
			if _, err := platform.Parse(scope); err != nil {
				return errors.Wrapf(err, errors.ErrConfigValid, "profile %s: pattern %q", p.Name, pat.Glob)
			}
		}
	}
	for i, pr := range p.Protects {
		if strings.TrimSpace(pr.Fragment) == "" {
			return errors.Newf(errors.ErrConfigValid, "profile %s: protect %d has empty fragment", p.Name, i)
		}
		switch pr.Mode {
		case "", ProtectContains, ProtectUnder:
		default:
			return errors.Newf(errors.ErrConfigValid, "profile %s: protect %q has unknown mode %q", p.Name, pr.Fragment, pr.Mode)
		}
	}
	return nil
}

// PatternsFor returns the patterns in declaration order whose scope
// includes id.
func (p Profile) PatternsFor(id platform.ID) []Pattern {
	var out []Pattern
	for _, pat := range p.Patterns {
		if pat.AppliesTo(id) {
			out = append(out, pat)
		}
	}
	return out
}

// WithExcludes returns a copy of p that also protects every directory in
// dirs. Absolute directories are made relative to root; directories outside
// root cannot be pruned anyway and are dropped.
func (p Profile) WithExcludes(root string, dirs []string) Profile {
	out := p
	out.Protects = append(Protects(nil), p.Protects...)
	for _, d := range dirs {
		rel := d
		if filepath.IsAbs(d) {
			r, err := filepath.Rel(root, d)
			if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
				continue
			}
			rel = r
		}
		rel = strings.Trim(filepath.ToSlash(filepath.Clean(rel)), "/")
		if rel == "" || rel == "." {
			continue
		}
		out.Protects = append(out.Protects, Protect{Fragment: rel, Mode: ProtectUnder})
	}
	return out
}

// Registry holds profiles by name.
type Registry map[string]Profile

// Get returns the named profile with its Name filled in.
func (r Registry) Get(name string) (Profile, error) {
	p, ok := r[name]
	if !ok {
		return Profile{}, errors.Newf(errors.ErrProfileNotFound, "profile %q not found", name).
			WithDetail("available", r.Names())
	}
	p.Name = name
	return p, nil
}

// Names lists profile names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks every profile.
func (r Registry) Validate() error {
	for _, name := range r.Names() {
		p, _ := r.Get(name)
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
