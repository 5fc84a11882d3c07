package config

import (
	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Dump encodes cfg as TOML. The output loads back through Load as a user
// file.
func Dump(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}

// DefaultsTOML returns the embedded defaults file verbatim.
func DefaultsTOML() string {
	return string(defaultConfig)
}
