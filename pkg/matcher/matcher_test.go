package matcher_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/matcher"
	"github.com/arthur-debert/envtrim/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleTree = testutil.Tree{
	"lib/libtiff.6.dylib":                                "tiff",
	"lib/libtiff.dylib":                                  "tiff",
	"lib/libpng16.16.dylib":                              "png",
	"lib/python3.11/site-packages/PIL/Image.py":          "",
	"lib/python3.11/site-packages/PIL/__pycache__/x.pyc": "",
	"lib/python3.11/site-packages/numpy/tests/test_a.py": "",
	"lib/python3.11/site-packages/numpy/core/tests/t.py": "",
	"lib/python3.11/__pycache__/abc.pyc":                 "",
	"__pycache__/top.pyc":                                "",
	"share/doc/readme.txt":                               "",
	"include/":                                           "",
}

// both runs the same expectations against every implementation.
func both(t *testing.T, fn func(t *testing.T, m matcher.Matcher)) {
	t.Run("glob", func(t *testing.T) { fn(t, matcher.New()) })
	t.Run("fallback", func(t *testing.T) { fn(t, matcher.NewFallback()) })
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "recursive_directory_name",
			pattern: "**/__pycache__",
			want: []string{
				"__pycache__",
				"lib/python3.11/__pycache__",
				"lib/python3.11/site-packages/PIL/__pycache__",
			},
		},
		{
			name:    "suffix_in_final_segment",
			pattern: "lib/*.dylib",
			want:    []string{"lib/libpng16.16.dylib", "lib/libtiff.6.dylib", "lib/libtiff.dylib"},
		},
		{
			name:    "prefix_and_suffix",
			pattern: "lib/libtiff*.dylib",
			want:    []string{"lib/libtiff.6.dylib", "lib/libtiff.dylib"},
		},
		{
			name:    "single_segment_star_in_middle",
			pattern: "lib/*/site-packages/PIL",
			want:    []string{"lib/python3.11/site-packages/PIL"},
		},
		{
			name:    "recursive_tests",
			pattern: "lib/**/tests",
			want: []string{
				"lib/python3.11/site-packages/numpy/core/tests",
				"lib/python3.11/site-packages/numpy/tests",
			},
		},
		{
			name:    "exact_path",
			pattern: "share/doc",
			want:    []string{"share/doc"},
		},
		{
			name:    "leading_dot_slash",
			pattern: "./include",
			want:    []string{"include"},
		},
		{
			name:    "missing_intermediate",
			pattern: "pkgs/**/*.tar.bz2",
			want:    []string{},
		},
		{
			name:    "no_match",
			pattern: "**/*.a",
			want:    []string{},
		},
	}

	both(t, func(t *testing.T, m matcher.Matcher) {
		root := testutil.CreateTree(t, t.TempDir(), sampleTree)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := m.Match(root, tt.pattern)
				assert.Equal(t, tt.want, testutil.Rel(t, root, got))
			})
		}
	})
}

func TestMatch_MissingRoot(t *testing.T) {
	both(t, func(t *testing.T, m matcher.Matcher) {
		missing := filepath.Join(t.TempDir(), "does-not-exist")
		assert.Empty(t, m.Match(missing, "**/*"))
	})
}

func TestMatch_NeverReturnsRoot(t *testing.T) {
	both(t, func(t *testing.T, m matcher.Matcher) {
		root := testutil.CreateTree(t, t.TempDir(), testutil.Tree{"a/b.txt": ""})
		got := testutil.Rel(t, root, m.Match(root, "**"))
		assert.NotContains(t, got, ".")
		assert.Contains(t, got, "a/b.txt")
	})
}

func TestMatch_DoesNotFollowSymlinkedDirs(t *testing.T) {
	both(t, func(t *testing.T, m matcher.Matcher) {
		root := testutil.CreateTree(t, t.TempDir(), testutil.Tree{"real/__pycache__/x.pyc": ""})
		testutil.CreateSymlink(t, root, "alias", "real")

		got := testutil.Rel(t, root, m.Match(root, "**/__pycache__"))
		assert.Equal(t, []string{"real/__pycache__"}, got)
	})
}

func TestFallback_Validate(t *testing.T) {
	f := matcher.NewFallback()

	for _, ok := range []string{"**/*.so*", "lib/libtiff*", "**/__pycache__", "a/b/c", "lib*.dylib"} {
		assert.NoError(t, f.Validate(ok), ok)
	}

	for _, bad := range []string{"lib/*tiff*", "lib/lib?.so", "lib/[ab].so", "lib/{a,b}.so"} {
		err := f.Validate(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedPattern), bad)
	}
}

func TestFallback_UnsupportedPatternMatchesNothing(t *testing.T) {
	root := testutil.CreateTree(t, t.TempDir(), sampleTree)
	assert.Empty(t, matcher.NewFallback().Match(root, "lib/*tiff*"))
}
