package rehome

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/report"
)

// Probe searches the tree at root for the library named target (for example
// "libtiff.6" or "libtiff.so.6") and for other members of its family
// ("libtiff"). It only observes; nothing is created or removed.
//
// Found holds libraries whose name contains target. Related holds the rest
// of the family, any library whose name contains the family ("tiff" matches
// libtiff.dll and tiff-6.dll). InPrivate is the subset of Found that sits
// inside a private library directory.
func (r *Rehomer) Probe(root, target string, c platform.Capability) report.ProbeResult {
	res := report.ProbeResult{Target: target, Found: []string{}}

	want := c.Fold(strings.TrimSpace(target))
	if want == "" {
		return res
	}
	family := want
	if idx := strings.IndexByte(want, '.'); idx > 0 {
		family = want[:idx]
	}
	private := "/" + c.Fold(c.PrivateLibDir) + "/"

	for _, path := range r.matcher.Match(root, "**/*") {
		name := filepath.Base(path)
		folded := c.Fold(name)
		if !strings.Contains(folded, family) || !c.IsLibrary(name) {
			continue
		}
		info, err := r.fs.Lstat(path)
		if err != nil || info.IsDir() {
			continue
		}

		if !strings.Contains(folded, want) {
			res.Related = append(res.Related, path)
			continue
		}
		res.Found = append(res.Found, path)
		if c.PrivateLibDir != "" && strings.Contains(c.Fold(filepath.ToSlash(path)), private) {
			res.InPrivate = append(res.InPrivate, path)
		}
	}

	r.logger.Info().
		Str("target", target).
		Int("found", len(res.Found)).
		Int("related", len(res.Related)).
		Int("private", len(res.InPrivate)).
		Msg("Probe complete")
	return res
}
