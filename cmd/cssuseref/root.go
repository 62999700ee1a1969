package cssuseref

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/cssuseref/internal/version"
	"github.com/arthur-debert/cssuseref/pkg/cobrax/topics"
	"github.com/arthur-debert/cssuseref/pkg/errors"
	"github.com/arthur-debert/cssuseref/pkg/logging"
	"github.com/arthur-debert/cssuseref/pkg/output"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     string
}

// renderer returns an output renderer for cmd's stdout
func (g *globalFlags) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := output.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), format), nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "cssuseref",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(output.FormatNames, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "Misc:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRewriteCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	installTopics(rootCmd)

	return rootCmd
}

// installTopics adds the embedded help topics to "help". Markdown is only
// rendered when stdout is a terminal.
func installTopics(rootCmd *cobra.Command) {
	opts := topics.Options{}
	if stdoutIsTerminal() {
		opts.Renderer = topics.NewGlamourRenderer()
	}
	tm, err := topics.Load(topicsFS, "topics", opts)
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	tm.Install(rootCmd)
	rootCmd.SetHelpCommandGroupID("misc")
}
