// Test Type: Unit Test
// Description: Tests for rule tables - pattern scope, protect predicates, profiles

package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_AppliesTo(t *testing.T) {
	tests := []struct {
		scope string
		id    platform.ID
		want  bool
	}{
		{"", platform.Linux, true},
		{"all", platform.Windows, true},
		{"windows", platform.Windows, true},
		{"windows", platform.Darwin, false},
		{"macos", platform.Darwin, true},
		{"bogus", platform.Linux, false},
	}
	for _, tt := range tests {
		p := rules.Pattern{Glob: "x", Platform: tt.scope}
		assert.Equal(t, tt.want, p.AppliesTo(tt.id), "scope=%q id=%s", tt.scope, tt.id)
	}
}

func TestPattern_Accepts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.pyc")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	dirInfo, err := os.Lstat(dir)
	require.NoError(t, err)
	fileInfo, err := os.Lstat(file)
	require.NoError(t, err)

	assert.True(t, rules.Pattern{Kind: rules.KindDir}.Accepts(dirInfo))
	assert.False(t, rules.Pattern{Kind: rules.KindDir}.Accepts(fileInfo))
	assert.True(t, rules.Pattern{Kind: rules.KindFile}.Accepts(fileInfo))
	assert.False(t, rules.Pattern{Kind: rules.KindFile}.Accepts(dirInfo))
	assert.True(t, rules.Pattern{}.Accepts(dirInfo))
	assert.True(t, rules.Pattern{Kind: rules.KindAny}.Accepts(fileInfo))
}

func TestProtect_Accepts(t *testing.T) {
	tests := []struct {
		name    string
		protect rules.Protect
		rel     string
		want    bool
	}{
		{"contains_hit", rules.Protect{Fragment: "/.dylibs"}, "lib/python3.11/site-packages/PIL/.dylibs", true},
		{"contains_descendant", rules.Protect{Fragment: "/.dylibs"}, "lib/site-packages/PIL/.dylibs/libtiff.6.dylib", true},
		{"contains_miss", rules.Protect{Fragment: "/.dylibs"}, "lib/libtiff.6.dylib", false},
		{"contains_backslashes", rules.Protect{Fragment: `numpy\core\tests`}, "lib/site-packages/numpy/core/tests", true},
		{"under_self", rules.Protect{Fragment: "ComfyUI", Mode: rules.ProtectUnder}, "ComfyUI", true},
		{"under_child", rules.Protect{Fragment: "ComfyUI/", Mode: rules.ProtectUnder}, "ComfyUI/tests", true},
		{"under_sibling_prefix", rules.Protect{Fragment: "ComfyUI", Mode: rules.ProtectUnder}, "ComfyUI-Manager/tests", false},
		{"under_elsewhere", rules.Protect{Fragment: "ComfyUI", Mode: rules.ProtectUnder}, "lib/ComfyUI", false},
		{"empty_fragment", rules.Protect{Fragment: "  "}, "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.protect.Accepts(tt.rel))
		})
	}
}

func TestProtects_Shields(t *testing.T) {
	under := rules.Protects{{Fragment: "a/b/c", Mode: rules.ProtectUnder}}
	assert.True(t, under.Shields("a"))
	assert.True(t, under.Shields("a/b"))
	assert.False(t, under.Shields("a/x"))
	assert.False(t, under.Shields("ab"))

	contains := rules.Protects{{Fragment: "keep"}}
	assert.True(t, contains.Shields("anything"))

	assert.False(t, rules.Protects{}.Shields("a"))
}

func TestProtects_Match(t *testing.T) {
	ps := rules.Protects{{Fragment: "first"}, {Fragment: "fir"}}
	p, ok := ps.Match("x/first/y")
	require.True(t, ok)
	assert.Equal(t, "first", p.Fragment)

	_, ok = ps.Match("none")
	assert.False(t, ok)
}

func TestProfile_Validate(t *testing.T) {
	valid := rules.Profile{
		Name:     "ok",
		Patterns: []rules.Pattern{{Glob: "**/__pycache__", Kind: rules.KindDir, Platform: "darwin"}},
		Protects: rules.Protects{{Fragment: "keep", Mode: rules.ProtectUnder}},
	}
	assert.NoError(t, valid.Validate())

	cases := map[string]rules.Profile{
		"empty_glob":    {Patterns: []rules.Pattern{{Glob: " "}}},
		"bad_kind":      {Patterns: []rules.Pattern{{Glob: "x", Kind: "socket"}}},
		"bad_platform":  {Patterns: []rules.Pattern{{Glob: "x", Platform: "amiga"}}},
		"empty_protect": {Protects: rules.Protects{{Fragment: ""}}},
		"bad_mode":      {Protects: rules.Protects{{Fragment: "x", Mode: "regex"}}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestProfile_PatternsFor(t *testing.T) {
	p := rules.Profile{Patterns: []rules.Pattern{
		{Glob: "a"},
		{Glob: "b", Platform: "windows"},
		{Glob: "c", Platform: "darwin"},
		{Glob: "d", Platform: "all"},
	}}

	var globs []string
	for _, pat := range p.PatternsFor(platform.Darwin) {
		globs = append(globs, pat.Glob)
	}
	assert.Equal(t, []string{"a", "c", "d"}, globs)
}

func TestProfile_WithExcludes(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "opt", "anymatix")
	base := rules.Profile{Name: "minimal", Protects: rules.Protects{{Fragment: "/.dylibs"}}}

	got := base.WithExcludes(root, []string{
		filepath.Join(root, "ComfyUI"),
		"ComfyUI/custom_nodes/clipseg/",
		filepath.Join(string(filepath.Separator), "elsewhere"),
		".",
	})

	assert.Len(t, base.Protects, 1, "original profile must not change")
	require.Len(t, got.Protects, 3)
	assert.Equal(t, rules.Protect{Fragment: "ComfyUI", Mode: rules.ProtectUnder}, got.Protects[1])
	assert.Equal(t, rules.Protect{Fragment: "ComfyUI/custom_nodes/clipseg", Mode: rules.ProtectUnder}, got.Protects[2])
}

func TestRegistry(t *testing.T) {
	reg := rules.Registry{
		"minimal":       {Description: "aggressive"},
		"full-preserve": {Description: "conservative"},
	}

	assert.Equal(t, []string{"full-preserve", "minimal"}, reg.Names())

	p, err := reg.Get("minimal")
	require.NoError(t, err)
	assert.Equal(t, "minimal", p.Name)

	_, err = reg.Get("tiny")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))

	assert.NoError(t, reg.Validate())
	reg["broken"] = rules.Profile{Patterns: []rules.Pattern{{}}}
	assert.Error(t, reg.Validate())
}
