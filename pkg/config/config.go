package config

import (
	"sort"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/rehome"
	"github.com/arthur-debert/envtrim/pkg/rules"
)

// Config is the effective envtrim configuration.
type Config struct {
	// Version is substituted for ${version} in globs and directories.
	Version string `koanf:"version" toml:"version"`
	// Profile names the profile used when the caller does not pick one.
	Profile   string                         `koanf:"profile" toml:"profile"`
	Platforms map[string]platform.Capability `koanf:"platforms" toml:"platforms"`
	Profiles  map[string]rules.Profile       `koanf:"profiles" toml:"profiles"`
	Aliases   map[string][]rehome.Alias      `koanf:"aliases" toml:"aliases"`
	Probes    map[string][]string            `koanf:"probes" toml:"probes"`
	// Excludes are repository directories never pruned, relative to the
	// tree root or absolute.
	Excludes []string `koanf:"excludes" toml:"excludes"`
}

// Capabilities returns the platform table keyed by parsed identifiers.
func (c *Config) Capabilities() (platform.Table, error) {
	table := make(platform.Table, len(c.Platforms))
	for name, capability := range c.Platforms {
		id, err := platform.Parse(name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "platforms.%s", name)
		}
		table[id] = capability
	}
	return table, nil
}

// Capability looks up one platform's capability.
func (c *Config) Capability(id platform.ID) (platform.Capability, error) {
	table, err := c.Capabilities()
	if err != nil {
		return platform.Capability{}, err
	}
	return table.Lookup(id)
}

// Registry returns the configured profiles.
func (c *Config) Registry() rules.Registry {
	return rules.Registry(c.Profiles)
}

// AliasesFor returns the alias table for id.
func (c *Config) AliasesFor(id platform.ID) []rehome.Alias {
	return c.Aliases[string(id)]
}

// ProbesFor returns the library names probed on id.
func (c *Config) ProbesFor(id platform.ID) []string {
	return c.Probes[string(id)]
}

// Validate checks everything the engine relies on.
func (c *Config) Validate() error {
	if _, err := c.Capabilities(); err != nil {
		return err
	}
	for _, name := range sortedKeys(c.Platforms) {
		p := c.Platforms[name]
		if !strings.HasPrefix(p.LibraryExtension, ".") {
			return errors.Newf(errors.ErrConfigValid, "platforms.%s: library_extension %q must start with a dot", name, p.LibraryExtension)
		}
		switch p.Enumeration {
		case platform.Curated, platform.Broad:
		default:
			return errors.Newf(errors.ErrConfigValid, "platforms.%s: unknown enumeration %q", name, p.Enumeration)
		}
		switch p.VersionPlacement {
		case platform.VersionAfter, platform.VersionBefore, platform.VersionNone:
		default:
			return errors.Newf(errors.ErrConfigValid, "platforms.%s: unknown version_placement %q", name, p.VersionPlacement)
		}
		if strings.TrimSpace(p.PrivateLibDir) == "" || strings.ContainsAny(p.PrivateLibDir, `/\`) {
			return errors.Newf(errors.ErrConfigValid, "platforms.%s: private_lib_dir %q must be a single directory name", name, p.PrivateLibDir)
		}
	}
	for platformName, aliases := range c.Aliases {
		if _, err := platform.Parse(platformName); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "aliases.%s", platformName)
		}
		for _, a := range aliases {
			if a.Canonical == "" || a.Alias == "" || strings.ContainsAny(a.Canonical+a.Alias, `/\`) {
				return errors.Newf(errors.ErrConfigValid, "aliases.%s: %q -> %q must be two bare file names", platformName, a.Alias, a.Canonical)
			}
		}
	}
	if err := c.Registry().Validate(); err != nil {
		return err
	}
	if c.Profile != "" {
		if _, err := c.Registry().Get(c.Profile); err != nil {
			return errors.Wrap(err, errors.ErrConfigValid, "default profile")
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
