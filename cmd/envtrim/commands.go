package envtrim

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/envtrim/internal/version"
	"github.com/arthur-debert/envtrim/pkg/config"
	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/arthur-debert/envtrim/pkg/platform"
	"github.com/arthur-debert/envtrim/pkg/report"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	verbosity  int
	configFile string
	platform   string
	dryRun     bool
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "envtrim",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.platform, "platform", "", MsgFlagPlatform)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", string(report.FormatText), MsgFlagFormat)

	_ = rootCmd.RegisterFlagCompletionFunc("platform", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return platform.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(report.FormatText), string(report.FormatJSON), string(report.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "INSPECT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newRunCmd(g))
	rootCmd.AddCommand(newPruneCmd(g))
	rootCmd.AddCommand(newRehomeCmd(g))
	rootCmd.AddCommand(newProbeCmd(g))
	rootCmd.AddCommand(newClassifyCmd(g))
	rootCmd.AddCommand(newMatchCmd(g))
	rootCmd.AddCommand(newProfilesCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newFingerprintCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// loadConfig applies the persistent flags to the config layers.
func (g *globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{File: g.configFile})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConf, err)
	}
	return cfg, nil
}

// platformID returns --platform or the running platform.
func (g *globals) platformID() (platform.ID, error) {
	if g.platform == "" {
		return platform.Current(), nil
	}
	return platform.Parse(g.platform)
}

// renderer builds a report renderer for w. Colour is only used when w is a
// terminal.
func (g *globals) renderer(w io.Writer, verbose bool) (report.Renderer, error) {
	format, err := report.ParseFormat(g.format)
	if err != nil {
		return report.Renderer{}, err
	}
	return report.Renderer{Format: format, Color: isTerminal(w), Verbose: verbose}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
