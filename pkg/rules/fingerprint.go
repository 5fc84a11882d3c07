package rules

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/cespare/xxhash/v2"
)

// Fingerprint accumulates a stable hash of the policy that shapes a tree, so
// build caches can be keyed on it.
type Fingerprint struct {
	d *xxhash.Digest
}

// NewFingerprint starts an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// Field adds a labelled value. Values are length-prefixed so adjacent fields
// cannot run together.
func (f *Fingerprint) Field(label string, values ...string) *Fingerprint {
	f.write(label)
	f.write(strconv.Itoa(len(values)))
	for _, v := range values {
		f.write(v)
	}
	return f
}

// Profile adds every pattern and protect of p, in order.
func (f *Fingerprint) Profile(p Profile) *Fingerprint {
	f.Field("profile", p.Name, strconv.FormatBool(p.Rehome))
	for _, pat := range p.Patterns {
		f.Field("pattern", pat.Glob, string(pat.kind()), pat.Platform)
	}
	for _, pr := range p.Protects {
		f.Field("protect", pr.Fragment, string(pr.Mode))
	}
	return f
}

// Capability adds the parts of c that change what the rehomer does.
func (f *Fingerprint) Capability(c platform.Capability) *Fingerprint {
	f.Field("platform", string(c.Platform), c.LibraryExtension, string(c.VersionPlacement),
		string(c.Enumeration), c.SystemLibDir, c.ConsumerDir, c.PrivateLibDir,
		strconv.FormatBool(c.CaseInsensitive))
	f.Field("candidates", c.Candidates...)
	f.Field("essential", c.EssentialPrefixes...)
	return f
}

// Sum returns the hex digest.
func (f *Fingerprint) Sum() string {
	return fmt.Sprintf("%016x", f.d.Sum64())
}

func (f *Fingerprint) write(s string) {
	_, _ = f.d.WriteString(strconv.Itoa(len(s)))
	_, _ = f.d.WriteString(":")
	_, _ = f.d.WriteString(s)
}
