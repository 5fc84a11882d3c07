// Package report aggregates the per-item outcome of an envtrim run.
//
// Components never return per-item errors to their callers. They record them
// here instead, so a run always ends with one summary: what was removed,
// preserved, copied, linked, skipped as missing, and what failed and why.
package report

import (
	"github.com/arthur-debert/envtrim/pkg/errors"
)

// Op names the operation an item records.
type Op string

const (
	OpRemove   Op = "remove"
	OpPreserve Op = "preserve"
	OpCopy     Op = "copy"
	OpLink     Op = "link"
	OpMkdir    Op = "mkdir"
	OpScan     Op = "scan"
)

// Item is one path-level outcome.
type Item struct {
	Path   string           `json:"path" yaml:"path"`
	Op     Op               `json:"op" yaml:"op"`
	Source string           `json:"source,omitempty" yaml:"source,omitempty"`
	Code   errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`
	Detail string           `json:"detail,omitempty" yaml:"detail,omitempty"`
	Bytes  int64            `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

// ProbeResult records a diagnostic search for one library.
type ProbeResult struct {
	Target    string   `json:"target" yaml:"target"`
	Found     []string `json:"found" yaml:"found"`
	Related   []string `json:"related,omitempty" yaml:"related,omitempty"`
	InPrivate []string `json:"in_private,omitempty" yaml:"in_private,omitempty"`
}

// Present reports whether the probed library was found anywhere.
func (p ProbeResult) Present() bool {
	return len(p.Found) > 0
}

// Report is the structured outcome of a run.
type Report struct {
	Root         string        `json:"root,omitempty" yaml:"root,omitempty"`
	Platform     string        `json:"platform,omitempty" yaml:"platform,omitempty"`
	Profile      string        `json:"profile,omitempty" yaml:"profile,omitempty"`
	Fingerprint  string        `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	DryRun       bool          `json:"dry_run" yaml:"dry_run"`
	Removed      []Item        `json:"removed" yaml:"removed"`
	Preserved    []Item        `json:"preserved" yaml:"preserved"`
	Copied       []Item        `json:"copied" yaml:"copied"`
	Linked       []Item        `json:"linked" yaml:"linked"`
	Skipped      []Item        `json:"skipped" yaml:"skipped"`
	Failed       []Item        `json:"failed" yaml:"failed"`
	BytesRemoved int64         `json:"bytes_removed" yaml:"bytes_removed"`
	Probes       []ProbeResult `json:"probes,omitempty" yaml:"probes,omitempty"`
}

// New returns an empty report.
func New() *Report {
	return &Report{}
}

// AddRemoved records a deleted path and the bytes it held.
func (r *Report) AddRemoved(path string, bytes int64) {
	r.Removed = append(r.Removed, Item{Path: path, Op: OpRemove, Bytes: bytes})
	r.BytesRemoved += bytes
}

// AddPreserved records a matched path kept by a protect predicate.
func (r *Report) AddPreserved(path, reason string) {
	r.Preserved = append(r.Preserved, Item{Path: path, Op: OpPreserve, Detail: reason})
}

// AddCopied records a library copied from src to dst.
func (r *Report) AddCopied(src, dst string) {
	r.Copied = append(r.Copied, Item{Path: dst, Op: OpCopy, Source: src})
}

// AddLinked records an alias created for canonical. how is "symlink" or
// "copy".
func (r *Report) AddLinked(canonical, alias, how string) {
	r.Linked = append(r.Linked, Item{Path: alias, Op: OpLink, Source: canonical, Detail: how})
}

// AddSkipped records a path that needed no action.
func (r *Report) AddSkipped(path string, op Op, detail string) {
	r.Skipped = append(r.Skipped, Item{Path: path, Op: op, Detail: detail})
}

// AddMissing records a path that was expected but does not exist.
func (r *Report) AddMissing(path string, op Op, detail string) {
	r.Skipped = append(r.Skipped, Item{Path: path, Op: op, Code: errors.ErrNotFound, Detail: detail})
}

// AddFailed records a per-item failure. Missing paths are routed to Skipped:
// a path that vanished between listing and acting is not a failure.
func (r *Report) AddFailed(path string, op Op, err error, fallback errors.ErrorCode) {
	code := errors.Classify(err, fallback)
	if code == errors.ErrNotFound {
		r.AddMissing(path, op, err.Error())
		return
	}
	r.Failed = append(r.Failed, Item{Path: path, Op: op, Code: code, Detail: err.Error()})
}

// AddLinkedByCopy records an alias that had to be written as a byte copy
// because the link could not be created.
func (r *Report) AddLinkedByCopy(canonical, alias string) {
	r.Linked = append(r.Linked, Item{
		Path: alias, Op: OpLink, Source: canonical, Code: errors.ErrLinkUnsupported, Detail: "copy",
	})
}

// AddProbe records a diagnostic probe.
func (r *Report) AddProbe(p ProbeResult) {
	r.Probes = append(r.Probes, p)
}

// Merge appends other's items into r. Identity fields of r win when set.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	if r.Root == "" {
		r.Root = other.Root
	}
	if r.Platform == "" {
		r.Platform = other.Platform
	}
	if r.Profile == "" {
		r.Profile = other.Profile
	}
	if r.Fingerprint == "" {
		r.Fingerprint = other.Fingerprint
	}
	r.DryRun = r.DryRun || other.DryRun
	r.Removed = append(r.Removed, other.Removed...)
	r.Preserved = append(r.Preserved, other.Preserved...)
	r.Copied = append(r.Copied, other.Copied...)
	r.Linked = append(r.Linked, other.Linked...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Failed = append(r.Failed, other.Failed...)
	r.BytesRemoved += other.BytesRemoved
	r.Probes = append(r.Probes, other.Probes...)
}

// Summary holds item counts.
type Summary struct {
	Removed      int   `json:"removed" yaml:"removed"`
	Preserved    int   `json:"preserved" yaml:"preserved"`
	Copied       int   `json:"copied" yaml:"copied"`
	Linked       int   `json:"linked" yaml:"linked"`
	Skipped      int   `json:"skipped" yaml:"skipped"`
	Failed       int   `json:"failed" yaml:"failed"`
	BytesRemoved int64 `json:"bytes_removed" yaml:"bytes_removed"`
}

// Summary counts the report's items.
func (r *Report) Summary() Summary {
	return Summary{
		Removed:      len(r.Removed),
		Preserved:    len(r.Preserved),
		Copied:       len(r.Copied),
		Linked:       len(r.Linked),
		Skipped:      len(r.Skipped),
		Failed:       len(r.Failed),
		BytesRemoved: r.BytesRemoved,
	}
}

// OK reports whether no item failed.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// FailureCounts groups failures by error code.
func (r *Report) FailureCounts() map[errors.ErrorCode]int {
	counts := make(map[errors.ErrorCode]int)
	for _, f := range r.Failed {
		counts[f.Code]++
	}
	return counts
}
