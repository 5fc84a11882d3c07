package envtrim

import (
	"fmt"

	"github.com/arthur-debert/envtrim/pkg/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newProfilesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Short:   MsgProfilesShort,
		GroupID: "inspect",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgProfilesListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			reg := cfg.Registry()
			rows := pterm.TableData{{"profile", "rehome", "patterns", "protects", "description"}}
			for _, name := range reg.Names() {
				p, _ := reg.Get(name)
				label := name
				if name == cfg.Profile {
					label += " (default)"
				}
				rows = append(rows, []string{
					label, fmt.Sprint(p.Rehome), fmt.Sprint(len(p.Patterns)), fmt.Sprint(len(p.Protects)), p.Description,
				})
			}
			out, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: MsgProfilesShowShort,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			cfg, err := g.loadConfig()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return cfg.Registry().Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			p, err := cfg.Registry().Get(args[0])
			if err != nil {
				return err
			}
			out, err := toml.Marshal(map[string]interface{}{"profiles": map[string]interface{}{p.Name: p}})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	return cmd
}

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "inspect",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: MsgConfigDumpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: MsgConfigDefaultsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsTOML())
			return err
		},
	})
	return cmd
}
