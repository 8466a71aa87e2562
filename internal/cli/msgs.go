package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Batch update installed mods from downloaded archives"
	MsgUpdateShort     = "Install or update every archived package"
	MsgPlanShort       = "Show what update would do"
	MsgGenConfigShort  = "Print a configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten = "Wrote configuration to %s\n"

	// Error messages
	MsgErrUpdateFailed = "%d of %d packages failed to update"
	MsgErrConfigExists = "%s already exists, use --force to overwrite it"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Plan the update without changing anything"
	MsgFlagStaging    = "Directory holding the archives (default: current directory)"
	MsgFlagInstall    = "Directory holding installed packages (default: parent of staging)"
	MsgFlagPattern    = "Glob selecting archive files"
	MsgFlagWorkers    = "Maximum concurrent updates (default: number of CPUs)"
	MsgFlagLockByName = "Run archives of the same package one after the other"
	MsgFlagOutput     = "Output format: auto, term, text, json or yaml"
	MsgFlagConfig     = "User configuration file (default: $XDG_CONFIG_HOME/modup/config.toml)"
	MsgFlagEffective  = "Print the effective configuration instead of the defaults"
	MsgFlagWrite      = "Write to the configuration file instead of stdout"
	MsgFlagForce      = "Overwrite an existing configuration file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/update-example.txt
	msgUpdateExampleRaw string
	MsgUpdateExample    = strings.TrimRight(msgUpdateExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)
)
