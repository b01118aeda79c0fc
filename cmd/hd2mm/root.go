package main

import (
	"errors"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/internal/version"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/filesystem"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags and the environment built from them
// before any sub-command runs.
type rootOptions struct {
	verbosity  int
	configPath string
	format     string
	dryRun     bool
	gameDir    string

	app *app
}

// reportedError marks an error whose details were already rendered.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "hd2mm",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(filesystem.NewOS(), opts, cmd.OutOrStdout())
			if err != nil {
				logging.SetupLogger(opts.verbosity, "")
				return err
			}
			logging.SetupLogger(opts.verbosity, a.settings.LogLevel)
			logging.LogCommand(cmd.CommandPath(), args)
			log.Debug().Str("settings", a.settingsPath).Msg("Settings loaded")
			opts.app = a
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.gameDir, "game-dir", "", MsgFlagGameDir)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "deploy", Title: "DEPLOYMENT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "mods", Title: "MODS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newDeployCmd(opts))
	rootCmd.AddCommand(newPurgeCmd(opts))
	rootCmd.AddCommand(newHardPurgeCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newRemoveCmd(opts))
	rootCmd.AddCommand(newEnableCmd(opts))
	rootCmd.AddCommand(newDisableCmd(opts))
	rootCmd.AddCommand(newSelectCmd(opts))
	rootCmd.AddCommand(newMoveCmd(opts))

	rootCmd.AddCommand(newSettingsCmd(opts))
	rootCmd.AddCommand(newDetectCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}
