package classify_test

import (
	"testing"

	"github.com/arthur-debert/envtrim/pkg/classify"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capability(t *testing.T, id platform.ID) platform.Capability {
	t.Helper()
	c, err := platform.Defaults().Lookup(id)
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		platform platform.ID
		file     string
		want     classify.Classification
	}{
		{"darwin_tiff_versioned", platform.Darwin, "libtiff.6.dylib", classify.Essential},
		{"darwin_case_folded", platform.Darwin, "LibTIFF.6.dylib", classify.Essential},
		{"darwin_python_runtime", platform.Darwin, "libpython3.11.dylib", classify.Essential},
		{"darwin_unlisted", platform.Darwin, "libcurl.4.dylib", classify.NonEssential},
		{"darwin_wrong_extension", platform.Darwin, "libtiff.so.6", classify.NonEssential},
		{"linux_tiff_versioned", platform.Linux, "libtiff.so.6.0.1", classify.Essential},
		{"linux_crypto", platform.Linux, "libcrypto.so.3", classify.Essential},
		{"linux_case_sensitive", platform.Linux, "LibTiff.so.6", classify.NonEssential},
		{"linux_extension_module", platform.Linux, "_imaging.cpython-311-x86_64-linux-gnu.so", classify.NonEssential},
		{"linux_static_archive", platform.Linux, "libtiff.a", classify.NonEssential},
		{"windows_tiff", platform.Windows, "tiff.dll", classify.Essential},
		{"windows_upper", platform.Windows, "LIBPNG16.DLL", classify.Essential},
		{"windows_unlisted", platform.Windows, "sqlite3.dll", classify.NonEssential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify.Classify(tt.file, capability(t, tt.platform))
			assert.Equal(t, tt.want, got, "%s on %s", tt.file, tt.platform)
		})
	}
}

func TestClassify_CustomAllowList(t *testing.T) {
	c := capability(t, platform.Darwin)
	c.EssentialPrefixes = []string{"libtiff"}

	assert.Equal(t, classify.Essential, classify.Classify("libtiff.6.dylib", c))
	assert.Equal(t, classify.NonEssential, classify.Classify("libpng16.dylib", c))

	prefix, ok := classify.MatchingPrefix("libtiff.6.dylib", c)
	assert.True(t, ok)
	assert.Equal(t, "libtiff", prefix)
}

func TestClassify_IsPure(t *testing.T) {
	c := capability(t, platform.Linux)
	files := []string{"libtiff.so.6", "libfoo.so", "libz.so.1", "libtiff.so.6"}

	first := make([]classify.Classification, len(files))
	for i, f := range files {
		first[i] = classify.Classify(f, c)
	}
	// Reverse order must not change any verdict.
	for i := len(files) - 1; i >= 0; i-- {
		assert.Equal(t, first[i], classify.Classify(files[i], c))
	}
}

func TestClassification_String(t *testing.T) {
	assert.Equal(t, "essential", classify.Essential.String())
	assert.Equal(t, "non-essential", classify.NonEssential.String())
}

func TestIsLibrary(t *testing.T) {
	c := capability(t, platform.Linux)
	assert.True(t, classify.IsLibrary("libz.so.1.3", c))
	assert.False(t, classify.IsLibrary("zlib.h", c))
}
