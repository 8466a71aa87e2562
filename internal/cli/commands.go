// Package cli builds modup's command tree.
package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/modup/internal/version"
	"github.com/arthur-debert/modup/pkg/cobrax/topics"
	"github.com/arthur-debert/modup/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// globalOptions holds the flags shared by every command.
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configPath string
	staging    string
	install    string
	pattern    string
	workers    int
	lockByName bool
	output     string
}

// NewRootCmd creates and returns the root command. Running it without a
// subcommand performs an update.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "modup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.Name(), args)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts, opts.dryRun)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.staging, "staging", "", MsgFlagStaging)
	flags.StringVar(&opts.install, "install", "", MsgFlagInstall)
	flags.StringVar(&opts.pattern, "pattern", "", MsgFlagPattern)
	flags.IntVarP(&opts.workers, "workers", "j", 0, MsgFlagWorkers)
	flags.BoolVar(&opts.lockByName, "lock-by-name", false, MsgFlagLockByName)
	flags.StringVarP(&opts.output, "output", "o", "", MsgFlagOutput)

	rootCmd.AddCommand(newUpdateCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	installTopics(rootCmd)

	return rootCmd
}

func installTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm, err := topics.New(sub, topics.Options{Renderer: topics.NewGlamourRenderer()})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm.Install(rootCmd)
}

func newUpdateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "update",
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		Example: MsgUpdateExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts, opts.dryRun)
		},
	}
}

func newPlanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
		Long:  MsgPlanLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, opts, true)
		},
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var gen genConfigOptions

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Long:  MsgGenConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenConfig(cmd, opts, gen)
		},
	}

	cmd.Flags().BoolVar(&gen.effective, "effective", false, MsgFlagEffective)
	cmd.Flags().BoolVarP(&gen.write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&gen.force, "force", false, MsgFlagForce)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(modup completion bash)

Zsh:
  $ modup completion zsh > "${fpath[1]}/_modup"

Fish:
  $ modup completion fish | source

PowerShell:
  PS> modup completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
