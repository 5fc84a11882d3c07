package rules_test

import (
	"testing"

	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/rules"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	profile := rules.Profile{
		Name:     "minimal",
		Patterns: []rules.Pattern{{Glob: "**/__pycache__", Kind: rules.KindDir}},
	}
	c, _ := platform.Defaults().Lookup(platform.Darwin)

	sum := func(p rules.Profile) string {
		return rules.NewFingerprint().Profile(p).Capability(c).Field("version", "3.11").Sum()
	}

	first := sum(profile)
	assert.Len(t, first, 16)
	assert.Equal(t, first, sum(profile), "fingerprint must be stable")

	changed := profile
	changed.Patterns = append([]rules.Pattern{}, profile.Patterns...)
	changed.Patterns[0].Kind = rules.KindAny
	assert.NotEqual(t, first, sum(changed))

	// Length prefixes keep field boundaries distinct.
	a := rules.NewFingerprint().Field("x", "ab", "c").Sum()
	b := rules.NewFingerprint().Field("x", "a", "bc").Sum()
	assert.NotEqual(t, a, b)
}
