package rehome

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/classify"
	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/filesystem"
	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/arthur-debert/envtrim/pkg/matcher"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/report"
	"github.com/rs/zerolog"
)

// Alias asks for Alias to resolve to Canonical inside the private
// library directory. Both are bare file names.
type Alias struct {
	Canonical string `koanf:"canonical" toml:"canonical" yaml:"canonical"`
	Alias     string `koanf:"alias" toml:"alias" yaml:"alias"`
}

// Rehomer copies essential libraries into a consumer's private directory.
type Rehomer struct {
	fs      filesystem.FS
	matcher matcher.Matcher
	dryRun  bool
	logger  zerolog.Logger
}

// Option configures a Rehomer.
type Option func(*Rehomer)

// WithFS replaces the filesystem.
func WithFS(fs filesystem.FS) Option {
	return func(r *Rehomer) { r.fs = fs }
}

// WithMatcher replaces the path matcher used for enumeration and probes.
func WithMatcher(m matcher.Matcher) Option {
	return func(r *Rehomer) { r.matcher = m }
}

// WithDryRun records planned copies and links without writing anything.
func WithDryRun(dryRun bool) Option {
	return func(r *Rehomer) { r.dryRun = dryRun }
}

// New creates a rehomer over the OS filesystem.
func New(opts ...Option) *Rehomer {
	r := &Rehomer{
		fs:      filesystem.NewOS(),
		matcher: matcher.New(),
		logger:  logging.GetLogger("rehome"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rehome copies the essential libraries found under systemLibDir into
// consumerDir/<PrivateLibDir> and then creates the requested aliases there.
func (r *Rehomer) Rehome(consumerDir, systemLibDir string, aliases []Alias, c platform.Capability) *report.Report {
	logger := r.logger.With().Str("consumer", consumerDir).Str("platform", string(c.Platform)).Logger()
	done := logging.LogOperationStart(logger, "rehome")
	defer done()

	rep := report.New()
	rep.Platform = string(c.Platform)
	rep.DryRun = r.dryRun

	if !r.isDir(consumerDir) {
		r.logger.Info().Str("consumer", consumerDir).Msg("Consumer directory missing, nothing to rehome")
		rep.AddMissing(consumerDir, report.OpCopy, "consumer directory missing")
		return rep
	}

	dest := filepath.Join(consumerDir, c.PrivateLibDir)
	if !r.dryRun {
		if err := r.fs.MkdirAll(dest, 0755); err != nil {
			r.logger.Error().Err(err).Str("dir", dest).Msg("Cannot create private library directory")
			rep.AddFailed(dest, report.OpMkdir, err, errors.ErrDirCreate)
			return rep
		}
	}

	run := &run{Rehomer: r, rep: rep, planned: map[string]bool{}}
	if r.isDir(systemLibDir) {
		for _, src := range r.Candidates(systemLibDir, dest, c) {
			run.copyOne(src, filepath.Join(dest, filepath.Base(src)))
		}
	} else {
		r.logger.Info().Str("dir", systemLibDir).Msg("System library directory missing, no copies")
		rep.AddMissing(systemLibDir, report.OpCopy, "system library directory missing")
	}

	for _, a := range aliases {
		run.link(dest, a)
	}

	s := rep.Summary()
	r.logger.Info().
		Str("dest", dest).
		Int("copied", s.Copied).
		Int("linked", s.Linked).
		Int("failed", s.Failed).
		Msg("Rehome complete")
	return rep
}

// Candidates lists the essential libraries under systemLibDir that would be
// copied into dest, in match order. Directories, non-library names, paths
// inside dest and non-essential names are dropped; when two candidates share
// a file name the first one wins.
func (r *Rehomer) Candidates(systemLibDir, dest string, c platform.Capability) []string {
	seen := make(map[string]bool)
	var out []string

	for _, glob := range enumerationGlobs(c) {
		for _, path := range r.matcher.Match(systemLibDir, glob) {
			if within(dest, path) {
				continue
			}
			name := filepath.Base(path)
			key := c.Fold(name)
			if seen[key] {
				continue
			}
			info, err := r.fs.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			if !classify.IsLibrary(name, c) || classify.Classify(name, c) != classify.Essential {
				continue
			}
			seen[key] = true
			out = append(out, path)
		}
	}
	return out
}

// enumerationGlobs returns the candidate globs. Broad platforms search every
// depth, so a glob without "**" is anchored anywhere below the directory.
func enumerationGlobs(c platform.Capability) []string {
	if c.Enumeration != platform.Broad {
		return c.Candidates
	}
	out := make([]string, 0, len(c.Candidates))
	for _, g := range c.Candidates {
		if !strings.Contains(g, "**") {
			g = "**/" + strings.TrimLeft(g, "/")
		}
		out = append(out, g)
	}
	return out
}

// run holds the state of one Rehome call.
type run struct {
	*Rehomer
	rep *report.Report
	// planned holds destinations a dry run would have created.
	planned map[string]bool
}

func (r *run) exists(path string) bool {
	if r.planned[path] {
		return true
	}
	_, err := r.fs.Stat(path)
	return err == nil
}

// present is exists without following links: a dangling alias still counts.
func (r *run) present(path string) bool {
	if r.planned[path] {
		return true
	}
	_, err := r.fs.Lstat(path)
	return err == nil
}

func (r *run) copyOne(src, dst string) {
	rep := r.rep
	if r.dryRun {
		if r.present(dst) {
			rep.AddSkipped(dst, report.OpCopy, "already present")
			return
		}
		r.planned[dst] = true
		rep.AddCopied(src, dst)
		return
	}

	created, err := filesystem.CopyNoClobber(r.fs, src, dst)
	switch {
	case err != nil:
		r.logger.Warn().Err(err).Str("src", src).Msg("Cannot copy library")
		rep.AddFailed(dst, report.OpCopy, err, errors.ErrFileCopy)
	case created:
		r.logger.Debug().Str("src", src).Str("dst", dst).Msg("Copied library")
		rep.AddCopied(src, dst)
	default:
		rep.AddSkipped(dst, report.OpCopy, "already present")
	}
}

func (r *run) link(dest string, a Alias) {
	rep := r.rep
	canonical := filepath.Join(dest, a.Canonical)
	alias := filepath.Join(dest, a.Alias)

	if r.present(alias) {
		detail := "alias already present"
		if target, err := r.fs.Readlink(alias); err == nil {
			detail += " -> " + target
		}
		rep.AddSkipped(alias, report.OpLink, detail)
		return
	}
	if !r.exists(canonical) {
		rep.AddMissing(canonical, report.OpLink, "canonical library missing")
		return
	}
	if r.dryRun {
		r.planned[alias] = true
		rep.AddLinked(canonical, alias, "symlink")
		return
	}

	// Relative target so the private directory can move with its package.
	linkErr := r.fs.Symlink(a.Canonical, alias)
	if linkErr == nil {
		rep.AddLinked(canonical, alias, "symlink")
		return
	}

	r.logger.Warn().Err(linkErr).Str("alias", alias).Msg("Symlink refused, copying instead")
	created, err := filesystem.CopyNoClobber(r.fs, canonical, alias)
	switch {
	case err != nil:
		failure := errors.Newf(errors.ErrLinkUnsupported, "symlink failed (%v) and copy failed (%v)", linkErr, err)
		rep.AddFailed(alias, report.OpLink, failure, errors.ErrLinkUnsupported)
	case created:
		rep.AddLinkedByCopy(canonical, alias)
	default:
		rep.AddSkipped(alias, report.OpLink, "alias already present")
	}
}

func (r *Rehomer) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && info.IsDir()
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
