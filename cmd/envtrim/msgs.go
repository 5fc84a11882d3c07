package envtrim

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort           = "Prune installed runtimes and rehome their shared libraries"
	MsgRunShort            = "Rehome libraries, then prune the tree"
	MsgPruneShort          = "Only prune the tree"
	MsgRehomeShort         = "Only copy libraries into the private library directory"
	MsgProbeShort          = "Search the tree for a library and its family"
	MsgClassifyShort       = "Show whether library names are essential"
	MsgMatchShort          = "List the paths a pattern matches"
	MsgProfilesShort       = "Inspect rule profiles"
	MsgProfilesListShort   = "List available profiles"
	MsgProfilesShowShort   = "Print one profile as TOML"
	MsgConfigShort         = "Inspect configuration"
	MsgConfigDumpShort     = "Print the effective configuration as TOML"
	MsgConfigDefaultsShort = "Print the built-in defaults file"
	MsgFingerprintShort    = "Print the policy fingerprint for cache keys"
	MsgVersionShort        = "Print version information"
	MsgCompletionShort     = "Generate shell completion script"
	MsgManShort            = "Generate the man page"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Report what would change without changing anything"
	MsgFlagConfig       = "Config file (.toml or .yaml)"
	MsgFlagPlatform     = "Target platform: linux, darwin or windows (default: this machine)"
	MsgFlagFormat       = "Report format: text, json or yaml"
	MsgFlagProfile      = "Rule profile (default from configuration)"
	MsgFlagExclude      = "Directory never pruned; repeatable"
	MsgFlagConsumer     = "Consumer directory receiving libraries (default from platform)"
	MsgFlagSystemLibDir = "Directory libraries are copied from (default from platform)"
	MsgFlagRuntime      = "Runtime version substituted for ${version}"
	MsgFlagProbe        = "Probe the configured libraries after the run"
	MsgFlagFallback     = "Use the built-in fallback matcher"
	MsgFlagVerboseList  = "List every path in text reports"
	MsgFlagManDir       = "Write man pages into this directory instead of stdout"

	// Output
	MsgVersionFormat  = "envtrim version %s\n  commit: %s\n  built:  %s\n"
	MsgFingerprintFmt = "%s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrLoadConf  = "failed to load configuration: %w"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
