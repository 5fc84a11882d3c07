package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment variable envtrim reads.
const EnvPrefix = "ENVTRIM_"

// LoadOptions selects the optional layers.
type LoadOptions struct {
	// File is an explicit config file. When empty the XDG location is used
	// if it exists.
	File string
	// Overrides are applied last, keyed by dotted path
	// (e.g. "platforms.darwin.private_lib_dir").
	Overrides map[string]interface{}
	// SkipUser ignores the XDG user file and the environment.
	SkipUser bool
}

// rawBytesProvider feeds embedded bytes to a koanf parser.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Platform capabilities
	if err := k.Load(confmap.Provider(platformDefaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load platform defaults")
	}

	// 2. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	// 3. User file
	path, explicit := opts.File, opts.File != ""
	if !explicit && !opts.SkipUser {
		path = UserConfigPath()
	}
	if path != "" {
		if err := loadFile(k, path, explicit); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	if !opts.SkipUser {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	// 5. Caller overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("file", path).
		Strs("profiles", cfg.Registry().Names()).
		Msg("Configuration loaded")
	return &cfg, nil
}

// UserConfigPath returns the first existing user config file, or "".
// XDG_CONFIG_HOME is read at call time so tests can redirect it.
func UserConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = xdg.ConfigHome
	}
	for _, name := range []string{"envtrim.toml", "envtrim.yaml", "envtrim.yml"} {
		path := filepath.Join(dir, logging.AppDirName, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadFile(k *koanf.Koanf, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return errors.Newf(errors.ErrConfigParse, "config file %s: unsupported extension, use .toml or .yaml", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
			WithDetail("path", path)
	}
	return nil
}

// platformDefaults renders the built-in capability table as a koanf map.
func platformDefaults() map[string]interface{} {
	table := platform.Defaults()
	platforms := make(map[string]interface{}, len(table))
	for _, id := range table.IDs() {
		c := table[id]
		platforms[string(id)] = map[string]interface{}{
			"library_extension":  c.LibraryExtension,
			"version_placement":  string(c.VersionPlacement),
			"case_insensitive":   c.CaseInsensitive,
			"enumeration":        string(c.Enumeration),
			"candidates":         c.Candidates,
			"system_lib_dir":     c.SystemLibDir,
			"consumer_dir":       c.ConsumerDir,
			"private_lib_dir":    c.PrivateLibDir,
			"essential_prefixes": c.EssentialPrefixes,
		}
	}
	return map[string]interface{}{"platforms": platforms}
}
