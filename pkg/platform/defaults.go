package platform

// unixImageCodecs are the codec libraries the image binding fails to import
// without.
var unixImageCodecs = []string{
	"libjpeg", "libtiff", "libpng", "libwebp", "libsharpyuv", "libfreetype",
	"liblcms", "libopenjp", "libdeflate", "libLerc", "libjbig", "libzstd",
}

var unixRuntime = []string{
	"libpython", "libffi", "libssl", "libcrypto", "libiconv", "libz",
	"liblzma", "libbz2", "libgomp", "libgfortran", "libquadmath",
	"libopenblas", "libblas", "libcblas", "liblapack",
}

// Defaults returns the built-in capability table.
func Defaults() Table {
	return Table{
		Linux: {
			LibraryExtension:  ".so",
			VersionPlacement:  VersionAfter,
			CaseInsensitive:   false,
			Enumeration:       Broad,
			Candidates:        []string{"**/*.so*"},
			SystemLibDir:      "lib",
			ConsumerDir:       "lib/python*/site-packages/PIL",
			PrivateLibDir:     ".libs",
			EssentialPrefixes: concat(unixImageCodecs, unixRuntime, []string{"libstdc++", "libgcc_s"}),
		},
		Darwin: {
			LibraryExtension: ".dylib",
			VersionPlacement: VersionBefore,
			CaseInsensitive:  true,
			Enumeration:      Curated,
			Candidates: []string{
				"libjpeg*.dylib", "libtiff*.dylib", "libpng*.dylib", "libwebp*.dylib",
				"libsharpyuv*.dylib", "libfreetype*.dylib", "liblcms*.dylib",
				"libopenjp*.dylib", "libiconv*.dylib", "libz*.dylib", "liblzma*.dylib",
				"libdeflate*.dylib", "libLerc*.dylib", "libjbig*.dylib",
			},
			SystemLibDir:      "lib",
			ConsumerDir:       "lib/python*/site-packages/PIL",
			PrivateLibDir:     ".dylibs",
			EssentialPrefixes: concat(unixImageCodecs, unixRuntime, []string{"libc++"}),
		},
		Windows: {
			LibraryExtension: ".dll",
			VersionPlacement: VersionNone,
			CaseInsensitive:  true,
			Enumeration:      Broad,
			Candidates:       []string{"**/*.dll"},
			SystemLibDir:     "Library/bin",
			ConsumerDir:      "Lib/site-packages/PIL",
			PrivateLibDir:    ".libs",
			EssentialPrefixes: []string{
				"jpeg", "libjpeg", "turbojpeg", "tiff", "libtiff", "libpng", "libwebp",
				"libsharpyuv", "freetype", "lcms", "openjp", "deflate", "lerc", "zstd",
				"python3", "ffi", "libssl", "libcrypto", "iconv", "libiconv", "zlib",
				"liblzma", "libbz2", "openblas", "libblas", "libcblas", "liblapack",
				"vcruntime", "msvcp",
			},
		},
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
