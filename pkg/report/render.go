package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/envtrim/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown output format %q", s)
	}
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Renderer writes reports.
type Renderer struct {
	Format Format
	// Color enables ANSI styling in text output.
	Color bool
	// Verbose lists every item instead of only failures and probes.
	Verbose bool
}

// Render writes r to w.
func (rd Renderer) Render(w io.Writer, r *Report) error {
	switch rd.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*Report
			Summary Summary `json:"summary"`
		}{r, r.Summary()})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(struct {
			Report  Report  `yaml:",inline"`
			Summary Summary `yaml:"summary"`
		}{*r, r.Summary()})
	default:
		return rd.renderText(w, r)
	}
}

func (rd Renderer) renderText(w io.Writer, r *Report) error {
	if !rd.Color {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}
	style := func(s lipgloss.Style, text string) string {
		if !rd.Color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	title := "envtrim"
	if r.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(&b, style(headingStyle, title))
	if r.Root != "" {
		fmt.Fprintf(&b, "root: %s  platform: %s  profile: %s\n", r.Root, r.Platform, r.Profile)
	}
	if r.Fingerprint != "" {
		fmt.Fprintf(&b, "fingerprint: %s\n", r.Fingerprint)
	}

	s := r.Summary()
	table := pterm.TableData{
		{"removed", "preserved", "copied", "linked", "skipped", "failed", "reclaimed"},
		{
			fmt.Sprint(s.Removed), fmt.Sprint(s.Preserved), fmt.Sprint(s.Copied),
			fmt.Sprint(s.Linked), fmt.Sprint(s.Skipped), fmt.Sprint(s.Failed),
			humanize.IBytes(uint64(s.BytesRemoved)),
		},
	}
	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(table).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(&b, rendered)

	for _, p := range r.Probes {
		status := style(okStyle, "present")
		if !p.Present() {
			status = style(failStyle, "missing")
		}
		fmt.Fprintf(&b, "probe %s: %s\n", p.Target, status)
		for _, f := range p.Found {
			fmt.Fprintf(&b, "  found %s\n", f)
		}
		for _, f := range p.Related {
			fmt.Fprintf(&b, "  related %s\n", f)
		}
		for _, f := range p.InPrivate {
			fmt.Fprintf(&b, "  private %s\n", f)
		}
	}

	if rd.Verbose {
		writeItems(&b, "removed", r.Removed)
		writeItems(&b, "preserved", r.Preserved)
		writeItems(&b, "copied", r.Copied)
		writeItems(&b, "linked", r.Linked)
		writeItems(&b, "skipped", r.Skipped)
	}

	if len(r.Failed) > 0 {
		counts := r.FailureCounts()
		codes := make([]string, 0, len(counts))
		for c := range counts {
			codes = append(codes, string(c))
		}
		sort.Strings(codes)
		parts := make([]string, 0, len(codes))
		for _, c := range codes {
			parts = append(parts, fmt.Sprintf("%s=%d", c, counts[errors.ErrorCode(c)]))
		}
		fmt.Fprintln(&b, style(failStyle, "failures: "+strings.Join(parts, " ")))
		for _, f := range r.Failed {
			fmt.Fprintf(&b, "  %s %s: %s\n", f.Op, f.Path, f.Detail)
		}
	} else {
		fmt.Fprintln(&b, style(okStyle, "ok"))
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func writeItems(b *strings.Builder, label string, items []Item) {
	for _, it := range items {
		switch {
		case it.Source != "" && it.Detail != "":
			fmt.Fprintf(b, "%s %s <- %s (%s)\n", label, it.Path, it.Source, it.Detail)
		case it.Source != "":
			fmt.Fprintf(b, "%s %s <- %s\n", label, it.Path, it.Source)
		case it.Detail != "":
			fmt.Fprintf(b, "%s %s (%s)\n", label, it.Path, it.Detail)
		default:
			fmt.Fprintf(b, "%s %s\n", label, it.Path)
		}
	}
}
