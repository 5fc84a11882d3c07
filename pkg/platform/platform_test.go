package platform_test

import (
	"testing"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want platform.ID
	}{
		{"linux", platform.Linux},
		{"Darwin", platform.Darwin},
		{"macos", platform.Darwin},
		{" win32 ", platform.Windows},
		{"windows", platform.Windows},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := platform.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := platform.Parse("plan9")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTable_Lookup(t *testing.T) {
	table := platform.Defaults()

	c, err := table.Lookup(platform.Darwin)
	require.NoError(t, err)
	assert.Equal(t, platform.Darwin, c.Platform)
	assert.Equal(t, ".dylibs", c.PrivateLibDir)
	assert.Equal(t, platform.Curated, c.Enumeration)

	_, err = table.Lookup("beos")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	assert.Equal(t, []platform.ID{platform.Darwin, platform.Linux, platform.Windows}, table.IDs())
}

func TestCapability_Stem(t *testing.T) {
	table := platform.Defaults()
	linux, _ := table.Lookup(platform.Linux)
	darwin, _ := table.Lookup(platform.Darwin)
	windows, _ := table.Lookup(platform.Windows)
	foldingLinux := linux
	foldingLinux.CaseInsensitive = true

	tests := []struct {
		name     string
		cap      platform.Capability
		file     string
		wantStem string
		wantOK   bool
	}{
		{"linux_plain", linux, "libtiff.so", "libtiff", true},
		{"linux_versioned", linux, "libtiff.so.6.0.1", "libtiff", true},
		{"linux_python", linux, "libpython3.11.so.1.0", "libpython3.11", true},
		{"linux_not_library", linux, "libtiff.so.bak", "", false},
		{"linux_header", linux, "tiff.h", "", false},
		{"linux_case_sensitive", linux, "LIBTIFF.SO", "", false},
		{"darwin_versioned", darwin, "libtiff.6.dylib", "libtiff", true},
		{"darwin_plain", darwin, "libpng16.dylib", "libpng16", true},
		{"darwin_upper_ext", darwin, "libz.1.DYLIB", "libz", true},
		{"darwin_bare_ext", darwin, ".dylib", "", false},
		{"windows_dll", windows, "tiff.dll", "tiff", true},
		{"windows_upper", windows, "LIBPNG16.DLL", "LIBPNG16", true},
		{"windows_not_library", windows, "tiff.lib", "", false},
		{"folding_invalid_utf8", foldingLinux, "lib\xff\xff\xff\xfftiff.so.6", "lib\xff\xff\xff\xfftiff", true},
		{"folding_upper_ext", foldingLinux, "LIBTIFF.SO.6", "LIBTIFF", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ok := tt.cap.Stem(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStem, stem)
			assert.Equal(t, tt.wantOK, tt.cap.IsLibrary(tt.file))
		})
	}
}

func TestCapability_Fold(t *testing.T) {
	linux, _ := platform.Defaults().Lookup(platform.Linux)
	darwin, _ := platform.Defaults().Lookup(platform.Darwin)

	assert.Equal(t, "LibTiff", linux.Fold("LibTiff"))
	assert.Equal(t, "libtiff", darwin.Fold("LibTiff"))
}
