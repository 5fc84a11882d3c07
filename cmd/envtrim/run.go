package envtrim

import (
	"github.com/arthur-debert/envtrim/pkg/engine"
	"github.com/arthur-debert/envtrim/pkg/logging"
	"github.com/spf13/cobra"
)

// runFlags are shared by run, prune and rehome.
type runFlags struct {
	profile      string
	excludes     []string
	consumerDir  string
	systemLibDir string
	version      string
	probe        bool
	verbose      bool
}

func (f *runFlags) bind(cmd *cobra.Command, rehome bool) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", MsgFlagProfile)
	cmd.Flags().StringVar(&f.version, "runtime-version", "", MsgFlagRuntime)
	cmd.Flags().BoolVarP(&f.verbose, "list", "l", false, MsgFlagVerboseList)
	cmd.Flags().BoolVar(&f.probe, "probe", false, MsgFlagProbe)
	if rehome {
		cmd.Flags().StringVar(&f.consumerDir, "consumer", "", MsgFlagConsumer)
		cmd.Flags().StringVar(&f.systemLibDir, "system-lib-dir", "", MsgFlagSystemLibDir)
	}
}

func newRunCmd(g *globals) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "run <root>",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, g, f, args[0], engine.StageAll, false)
		},
	}
	f.bind(cmd, true)
	cmd.Flags().StringArrayVarP(&f.excludes, "exclude", "x", nil, MsgFlagExclude)
	return cmd
}

func newPruneCmd(g *globals) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "prune <root>",
		Short:   MsgPruneShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, g, f, args[0], engine.StagePrune, false)
		},
	}
	f.bind(cmd, false)
	cmd.Flags().StringArrayVarP(&f.excludes, "exclude", "x", nil, MsgFlagExclude)
	return cmd
}

func newRehomeCmd(g *globals) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:     "rehome <root>",
		Short:   MsgRehomeShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, g, f, args[0], engine.StageRehome, true)
		},
	}
	f.bind(cmd, true)
	return cmd
}

// execute runs the engine and renders its report. Failures recorded in the
// report do not produce an error; only fatal engine errors do.
func execute(cmd *cobra.Command, g *globals, f *runFlags, root string, stages engine.Stage, force bool) error {
	logger := logging.GetLogger("cmd." + cmd.Name())

	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	id, err := g.platformID()
	if err != nil {
		return err
	}
	rd, err := g.renderer(cmd.OutOrStdout(), f.verbose)
	if err != nil {
		return err
	}
	if f.probe {
		stages |= engine.StageProbe
	}

	rep, err := engine.Run(engine.Options{
		Config:       cfg,
		Platform:     id,
		Root:         root,
		Profile:      f.profile,
		Version:      f.version,
		ConsumerDir:  f.consumerDir,
		SystemLibDir: f.systemLibDir,
		Excludes:     f.excludes,
		DryRun:       g.dryRun,
		Stages:       stages,
		ForceRehome:  force,
	})
	if err != nil {
		return err
	}

	logger.Debug().Bool("ok", rep.OK()).Msg("Rendering report")
	return rd.Render(cmd.OutOrStdout(), rep)
}
