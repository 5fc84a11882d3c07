package envtrim

import (
	"fmt"

	"github.com/arthur-debert/envtrim/pkg/classify"
	"github.com/arthur-debert/envtrim/pkg/engine"
	"github.com/arthur-debert/envtrim/pkg/matcher"
	"github.com/arthur-debert/envtrim/pkg/rehome"
	"github.com/arthur-debert/envtrim/pkg/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newProbeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "probe <root> [library...]",
		Short:   MsgProbeShort,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "inspect",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			id, err := g.platformID()
			if err != nil {
				return err
			}
			c, err := cfg.Capability(id)
			if err != nil {
				return err
			}
			rd, err := g.renderer(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}

			targets := args[1:]
			if len(targets) == 0 {
				targets = cfg.ProbesFor(id)
			}

			rep := report.New()
			rep.Root = args[0]
			rep.Platform = string(id)
			r := rehome.New()
			for _, target := range targets {
				rep.AddProbe(r.Probe(args[0], target, c))
			}
			return rd.Render(cmd.OutOrStdout(), rep)
		},
	}
}

func newClassifyCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "classify <file>...",
		Short:   MsgClassifyShort,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "inspect",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			id, err := g.platformID()
			if err != nil {
				return err
			}
			c, err := cfg.Capability(id)
			if err != nil {
				return err
			}

			rows := pterm.TableData{{"name", "library", "verdict", "prefix"}}
			for _, name := range args {
				prefix, _ := classify.MatchingPrefix(name, c)
				rows = append(rows, []string{
					name,
					fmt.Sprint(classify.IsLibrary(name, c)),
					classify.Classify(name, c).String(),
					prefix,
				})
			}
			out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newMatchCmd(g *globals) *cobra.Command {
	var fallback bool
	cmd := &cobra.Command{
		Use:     "match <root> <pattern>",
		Short:   MsgMatchShort,
		Args:    cobra.ExactArgs(2),
		GroupID: "inspect",
		RunE: func(cmd *cobra.Command, args []string) error {
			var m matcher.Matcher = matcher.New()
			if fallback {
				fb := matcher.NewFallback()
				if err := fb.Validate(args[1]); err != nil {
					return err
				}
				m = fb
			}
			for _, p := range m.Match(args[0], args[1]) {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fallback, "fallback", false, MsgFlagFallback)
	return cmd
}

func newFingerprintCmd(g *globals) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "fingerprint",
		Short:   MsgFingerprintShort,
		Args:    cobra.NoArgs,
		GroupID: "inspect",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			id, err := g.platformID()
			if err != nil {
				return err
			}
			plan, err := engine.Resolve(engine.Options{
				Config:   cfg,
				Platform: id,
				Profile:  f.profile,
				Version:  f.version,
				Excludes: f.excludes,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgFingerprintFmt, plan.Fingerprint)
			return err
		},
	}
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", MsgFlagProfile)
	cmd.Flags().StringVar(&f.version, "runtime-version", "", MsgFlagRuntime)
	cmd.Flags().StringArrayVarP(&f.excludes, "exclude", "x", nil, MsgFlagExclude)
	return cmd
}
