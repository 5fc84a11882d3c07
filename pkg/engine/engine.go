package engine

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/config"
	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/filesystem"
	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/arthur-debert/envtrim/pkg/matcher"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/prune"
	"github.com/arthur-debert/envtrim/pkg/rehome"
	"github.com/arthur-debert/envtrim/pkg/report"
	"github.com/arthur-debert/envtrim/pkg/rules"
)

// VersionPlaceholder is replaced by the runtime version in globs and
// directories.
const VersionPlaceholder = "${version}"

// Stage selects which parts of a run execute.
type Stage int

const (
	StageRehome Stage = 1 << iota
	StagePrune
	StageProbe

	StageAll = StageRehome | StagePrune
)

// Options describes one run.
type Options struct {
	Config   *config.Config
	Platform platform.ID
	Root     string
	// Profile overrides Config.Profile.
	Profile string
	// Version overrides Config.Version.
	Version string
	// ConsumerDir and SystemLibDir override the capability's directories.
	// Relative paths are taken from Root.
	ConsumerDir  string
	SystemLibDir string
	// Excludes are added to Config.Excludes.
	Excludes []string
	DryRun   bool
	// Stages defaults to StageAll.
	Stages Stage
	// ForceRehome rehomes even when the profile disables it.
	ForceRehome bool

	FS      filesystem.FS
	Matcher matcher.Matcher
}

// Plan is the resolved policy of a run.
type Plan struct {
	Platform     platform.ID
	Capability   platform.Capability
	Profile      rules.Profile
	Aliases      []rehome.Alias
	Probes       []string
	Excludes     []string
	Version      string
	Fingerprint  string
	SystemLibDir string
}

// Resolve turns opts into a plan without touching the tree.
func Resolve(opts Options) (*Plan, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration supplied")
	}

	id := opts.Platform
	if id == "" {
		id = platform.Current()
	}
	c, err := cfg.Capability(id)
	if err != nil {
		return nil, err
	}

	name := opts.Profile
	if name == "" {
		name = cfg.Profile
	}
	profile, err := cfg.Registry().Get(name)
	if err != nil {
		return nil, err
	}

	version := opts.Version
	if version == "" {
		version = cfg.Version
	}

	plan := &Plan{
		Platform:   id,
		Capability: ExpandCapability(c, version),
		Profile:    ExpandProfile(profile, version),
		Aliases:    cfg.AliasesFor(id),
		Probes:     cfg.ProbesFor(id),
		Version:    version,
	}
	for _, d := range append(append([]string(nil), cfg.Excludes...), opts.Excludes...) {
		plan.Excludes = append(plan.Excludes, Expand(d, version))
	}
	plan.SystemLibDir = plan.Capability.SystemLibDir
	if opts.SystemLibDir != "" {
		plan.SystemLibDir = opts.SystemLibDir
	}

	fp := rules.NewFingerprint().
		Field("version", version).
		Profile(plan.Profile).
		Capability(plan.Capability)
	for _, a := range plan.Aliases {
		fp.Field("alias", a.Canonical, a.Alias)
	}
	fp.Field("excludes", plan.Excludes...)
	plan.Fingerprint = fp.Sum()

	return plan, nil
}

// Run executes opts against the tree. The returned error is nil unless the
// input is invalid or the root is missing; per-item problems are in the
// report.
func Run(opts Options) (*report.Report, error) {
	plan, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	logger := logging.WithFields(map[string]interface{}{
		"component": "engine",
		"platform":  string(plan.Platform),
		"profile":   plan.Profile.Name,
	})

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	m := opts.Matcher
	if m == nil {
		m = matcher.New()
	}
	stages := opts.Stages
	if stages == 0 {
		stages = StageAll
	}

	root := filepath.Clean(opts.Root)
	if err := prune.CheckRoot(fsys, root); err != nil {
		logger.Error().Err(err).Str("root", root).Msg("Tree root missing")
		return nil, err
	}

	done := logging.LogOperationStart(logger, "run")
	defer done()

	logger.Info().
		Str("root", root).
		Str("fingerprint", plan.Fingerprint).
		Bool("dryRun", opts.DryRun).
		Msg("Starting run")

	rep := report.New()
	rep.Root = root
	rep.Platform = string(plan.Platform)
	rep.Profile = plan.Profile.Name
	rep.Fingerprint = plan.Fingerprint
	rep.DryRun = opts.DryRun

	rehomer := rehome.New(rehome.WithFS(fsys), rehome.WithMatcher(m), rehome.WithDryRun(opts.DryRun))

	if stages&StageRehome != 0 {
		if plan.Profile.Rehome || opts.ForceRehome {
			sysDir := under(root, plan.SystemLibDir)
			consumers := consumerDirs(fsys, m, root, opts.ConsumerDir, plan.Capability)
			if len(consumers) == 0 {
				rep.AddMissing(under(root, plan.Capability.ConsumerDir), report.OpCopy, "no consumer directory")
			}
			for _, consumer := range consumers {
				rep.Merge(rehomer.Rehome(consumer, sysDir, plan.Aliases, plan.Capability))
			}
		} else {
			logger.Info().Str("profile", plan.Profile.Name).Msg("Profile does not rehome libraries")
		}
	}

	if stages&StagePrune != 0 {
		pruner := prune.New(prune.WithFS(fsys), prune.WithMatcher(m), prune.WithDryRun(opts.DryRun))
		pruned, err := pruner.Prune(root, plan.Profile.WithExcludes(root, absolutize(root, plan.Excludes)), plan.Platform)
		if err != nil {
			return nil, err
		}
		rep.Merge(pruned)
	}

	if stages&StageProbe != 0 {
		for _, target := range plan.Probes {
			rep.AddProbe(rehomer.Probe(root, target, plan.Capability))
		}
	}

	s := rep.Summary()
	logger.Info().
		Int("removed", s.Removed).
		Int("preserved", s.Preserved).
		Int("copied", s.Copied).
		Int("linked", s.Linked).
		Int("failed", s.Failed).
		Int64("bytes", s.BytesRemoved).
		Msg("Run complete")

	return rep, nil
}

// consumerDirs resolves the directories libraries are rehomed into.
func consumerDirs(fsys filesystem.FS, m matcher.Matcher, root, override string, c platform.Capability) []string {
	if override != "" {
		return []string{under(root, override)}
	}
	var out []string
	for _, path := range m.Match(root, c.ConsumerDir) {
		if info, err := fsys.Stat(path); err == nil && info.IsDir() {
			out = append(out, path)
		}
	}
	return out
}

// Expand substitutes version for the placeholder. An empty version matches
// any version.
func Expand(s, version string) string {
	if version == "" {
		version = "*"
	}
	return strings.ReplaceAll(s, VersionPlaceholder, version)
}

// ExpandProfile returns a copy of p with every glob expanded.
func ExpandProfile(p rules.Profile, version string) rules.Profile {
	out := p
	out.Patterns = make([]rules.Pattern, len(p.Patterns))
	for i, pat := range p.Patterns {
		pat.Glob = Expand(pat.Glob, version)
		out.Patterns[i] = pat
	}
	return out
}

// ExpandCapability returns a copy of c with its directories and candidate
// globs expanded.
func ExpandCapability(c platform.Capability, version string) platform.Capability {
	out := c
	out.SystemLibDir = Expand(c.SystemLibDir, version)
	out.ConsumerDir = Expand(c.ConsumerDir, version)
	out.Candidates = make([]string, len(c.Candidates))
	for i, g := range c.Candidates {
		out.Candidates[i] = Expand(g, version)
	}
	return out
}

func under(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, filepath.FromSlash(path))
}

func absolutize(root string, dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, under(root, d))
	}
	return out
}
