package main

import (
	"fmt"
	"path/filepath"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/config"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/paths"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Short:   MsgSettingsShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			return a.report(display.FromSettings(a.settingsPath, a.settings), nil)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgSettingsShow,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			return a.report(display.FromSettings(a.settingsPath, a.settings), nil)
		},
	})
	cmd.AddCommand(newSettingsSetCmd(opts))
	return cmd
}

func newSettingsSetCmd(opts *rootOptions) *cobra.Command {
	var noCheck bool

	cmd := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     MsgSettingsSet,
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			key, value := args[0], args[1]

			s := *a.settings
			if err := s.Set(key, value); err != nil {
				return err
			}
			if key == config.KeyGameDir && s.GameDir != "" {
				abs, err := filepath.Abs(s.GameDir)
				if err != nil {
					return errors.Wrapf(err, errors.ErrInvalidInput, "invalid game_dir %s", s.GameDir)
				}
				s.GameDir = abs
				if !noCheck {
					if err := paths.ValidateGameDir(a.fs, abs); err != nil {
						return err
					}
				}
			}
			if err := s.Validate(); err != nil {
				return err
			}
			if err := config.Save(a.settingsPath, &s); err != nil {
				return err
			}

			*a.settings = s
			return a.message("success", fmt.Sprintf(MsgSettingSaved, key, a.settingsPath))
		},
	}

	cmd.Flags().BoolVar(&noCheck, "no-check", false, MsgFlagNoCheck)
	return cmd
}

func newDetectCmd(opts *rootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:     "detect",
		Short:   MsgDetectShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app

			view := &display.GameDirView{Found: []string{}}
			dir, ok := paths.DetectGameDir(a.fs, paths.DefaultSearchRoots())
			if ok {
				view.Found = append(view.Found, dir)
			}
			if err := a.report(view, nil); err != nil {
				return err
			}
			if !ok || !save {
				return nil
			}

			s := *a.settings
			s.GameDir = dir
			if err := config.Save(a.settingsPath, &s); err != nil {
				return err
			}
			*a.settings = s
			return a.message("success", fmt.Sprintf(MsgGameDirSaved, dir))
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, MsgFlagSave)
	return cmd
}
