package prune

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/filesystem"
	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/arthur-debert/envtrim/pkg/matcher"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/report"
	"github.com/arthur-debert/envtrim/pkg/rules"
	"github.com/rs/zerolog"
)

// Pruner deletes matched, unprotected paths.
type Pruner struct {
	fs      filesystem.FS
	matcher matcher.Matcher
	dryRun  bool
	logger  zerolog.Logger
}

// Option configures a Pruner.
type Option func(*Pruner)

// WithFS replaces the filesystem.
func WithFS(fs filesystem.FS) Option {
	return func(p *Pruner) { p.fs = fs }
}

// WithMatcher replaces the path matcher.
func WithMatcher(m matcher.Matcher) Option {
	return func(p *Pruner) { p.matcher = m }
}

// WithDryRun records what would be removed without removing it.
func WithDryRun(dryRun bool) Option {
	return func(p *Pruner) { p.dryRun = dryRun }
}

// New creates a pruner over the OS filesystem.
func New(opts ...Option) *Pruner {
	p := &Pruner{
		fs:      filesystem.NewOS(),
		matcher: matcher.New(),
		logger:  logging.GetLogger("prune"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prune applies profile to the tree at root. The only error it returns is
// ROOT_MISSING; everything else is recorded in the report.
func (p *Pruner) Prune(root string, profile rules.Profile, id platform.ID) (*report.Report, error) {
	if err := CheckRoot(p.fs, root); err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(p.logger, "prune")
	defer done()

	rep := report.New()
	rep.Root = root
	rep.Platform = string(id)
	rep.Profile = profile.Name
	rep.DryRun = p.dryRun

	pass := &pass{Pruner: p, root: root, protects: profile.Protects, rep: rep, gone: map[string]bool{}}
	for _, pat := range profile.PatternsFor(id) {
		pass.apply(pat)
	}

	s := rep.Summary()
	p.logger.Info().
		Str("profile", profile.Name).
		Int("removed", s.Removed).
		Int("preserved", s.Preserved).
		Int("failed", s.Failed).
		Int64("bytes", s.BytesRemoved).
		Bool("dryRun", p.dryRun).
		Msg("Prune complete")

	return rep, nil
}

// pass holds the state of one Prune call.
type pass struct {
	*Pruner
	root     string
	protects rules.Protects
	rep      *report.Report
	// gone holds rel paths fully removed during this pass.
	gone map[string]bool
}

func (ps *pass) apply(pat rules.Pattern) {
	matches := ps.matcher.Match(ps.root, pat.Glob)
	ps.logger.Debug().Str("glob", pat.Glob).Int("matches", len(matches)).Msg("Applying pattern")

	for _, path := range matches {
		rel := ps.rel(path)
		if ps.removedEarlier(rel) {
			continue
		}

		info, err := ps.fs.Lstat(path)
		if err != nil {
			ps.rep.AddFailed(path, report.OpScan, err, errors.ErrFileDelete)
			continue
		}
		if !pat.Accepts(info) {
			continue
		}

		if prot, ok := ps.protects.Match(rel); ok {
			ps.logger.Debug().Str("path", rel).Str("protect", prot.Fragment).Msg("Preserved")
			ps.rep.AddPreserved(path, prot.Fragment)
			continue
		}

		if !info.IsDir() {
			if ps.removeEntry(path) {
				ps.gone[rel] = true
				ps.rep.AddRemoved(path, info.Size())
				ps.logger.Debug().Str("path", rel).Msg("Removed file")
			}
			continue
		}

		bytes, complete := ps.removeTree(path, rel)
		if complete {
			ps.gone[rel] = true
			ps.rep.AddRemoved(path, bytes)
			ps.logger.Debug().Str("path", rel).Int64("bytes", bytes).Msg("Removed directory")
			continue
		}
		ps.logger.Debug().Str("path", rel).Msg("Directory kept, removed its unprotected contents")
	}
}

// removeTree deletes dir post-order. When dir itself is removed it returns
// the bytes freed and true, and the caller records dir as one item. When
// something inside survives, dir stays, every child that did go is recorded
// on its own and the returned byte count is zero.
func (ps *pass) removeTree(dir, rel string) (int64, bool) {
	entries, err := ps.fs.ReadDir(dir)
	if err != nil {
		if errors.IsMissing(err) {
			return 0, true
		}
		ps.rep.AddFailed(dir, report.OpRemove, err, errors.ErrFileDelete)
		return 0, false
	}

	type removal struct {
		path, rel string
		bytes     int64
	}
	var done []removal
	checkChildren := ps.protects.Shields(rel)
	complete := true

	for _, e := range entries {
		child := filepath.Join(dir, e.Name())
		childRel := rel + "/" + e.Name()

		// already counted by an earlier pattern (dry-run leaves it on disk)
		if ps.gone[childRel] {
			continue
		}

		if checkChildren {
			if prot, ok := ps.protects.Match(childRel); ok {
				ps.rep.AddPreserved(child, prot.Fragment)
				complete = false
				continue
			}
		}

		if e.IsDir() {
			bytes, ok := ps.removeTree(child, childRel)
			if ok {
				done = append(done, removal{child, childRel, bytes})
			} else {
				complete = false
			}
			continue
		}

		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		if !ps.removeEntry(child) {
			complete = false
			continue
		}
		done = append(done, removal{child, childRel, size})
	}

	if complete && ps.removeEntry(dir) {
		var total int64
		for _, d := range done {
			total += d.bytes
		}
		return total, true
	}
	for _, d := range done {
		ps.gone[d.rel] = true
		ps.rep.AddRemoved(d.path, d.bytes)
	}
	return 0, false
}

// removeEntry removes a single file, link or empty directory. A path that is
// already gone counts as removed.
func (ps *pass) removeEntry(path string) bool {
	if ps.dryRun {
		return true
	}
	err := ps.fs.Remove(path)
	if err == nil || errors.IsMissing(err) {
		return true
	}
	ps.logger.Warn().Err(err).Str("path", path).Msg("Cannot remove")
	ps.rep.AddFailed(path, report.OpRemove, err, errors.ErrFileDelete)
	return false
}

// removedEarlier reports whether rel or one of its ancestors was removed
// earlier in this pass.
func (ps *pass) removedEarlier(rel string) bool {
	for cur := rel; cur != "" && cur != "."; {
		if ps.gone[cur] {
			return true
		}
		idx := strings.LastIndexByte(cur, '/')
		if idx < 0 {
			break
		}
		cur = cur[:idx]
	}
	return false
}

func (ps *pass) rel(path string) string {
	rel, err := filepath.Rel(ps.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// CheckRoot returns ROOT_MISSING unless root is an existing directory.
func CheckRoot(fs filesystem.FS, root string) error {
	info, err := fs.Stat(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRootMissing, "tree root %s does not exist", root).
			WithDetail("root", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrRootMissing, "tree root %s is not a directory", root).
			WithDetail("root", root)
	}
	return nil
}
