package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/filesystem"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/mods"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/display"
	"github.com/spf13/cobra"
)

// modNamesCompletion completes stored mod names.
func modNamesCompletion(opts *rootOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a := opts.app
		if a == nil {
			var err error
			if a, err = newApp(filesystem.NewOS(), opts, io.Discard); err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
		}
		store, _, err := a.openMods()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var names []string
		for _, m := range store.All() {
			if strings.HasPrefix(strings.ToLower(m.Name), strings.ToLower(toComplete)) {
				names = append(names, m.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

// notifyEvents renders store events as they happen.
func notifyEvents(a *app, store *mods.Store) func() {
	return store.Subscribe(func(ev mods.Event) {
		verb := "Added"
		if ev.Type == mods.EventRemoved {
			verb = "Removed"
		}
		_ = a.message("success", fmt.Sprintf(MsgModEvent, verb, ev.Mod.Name))
	})
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "mods",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			store, _, err := a.openMods()
			if err != nil {
				return err
			}
			return a.report(display.FromMods(store.All(), store.Profile()), nil)
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <dir>...",
		Short:   MsgAddShort,
		GroupID: "mods",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			store, _, err := a.openMods()
			if err != nil {
				return err
			}
			defer notifyEvents(a, store)()

			for _, dir := range args {
				if _, err := store.AddFromDirectory(dir); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <mod>...",
		Aliases:           []string{"rm"},
		Short:             MsgRemoveShort,
		GroupID:           "mods",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: modNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			store, _, err := a.openMods()
			if err != nil {
				return err
			}
			defer notifyEvents(a, store)()

			for _, ref := range args {
				mod, err := store.Find(ref)
				if err != nil {
					return err
				}
				if err := store.Remove(mod.ID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newToggleCmd(opts *rootOptions, use, short, done string, enable bool) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <mod>...",
		Short:             short,
		GroupID:           "mods",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: modNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			store, _, err := a.openMods()
			if err != nil {
				return err
			}

			for _, ref := range args {
				mod, err := store.Find(ref)
				if err != nil {
					return err
				}
				toggle := store.Disable
				if enable {
					toggle = store.Enable
				}
				if err := toggle(mod.ID); err != nil {
					return err
				}
				if err := a.message("success", fmt.Sprintf(done, mod.Name)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEnableCmd(opts *rootOptions) *cobra.Command {
	return newToggleCmd(opts, "enable", MsgEnableShort, MsgModEnabled, true)
}

func newDisableCmd(opts *rootOptions) *cobra.Command {
	return newToggleCmd(opts, "disable", MsgDisableShort, MsgModDisabled, false)
}

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var enabled []string

	cmd := &cobra.Command{
		Use:               "select <mod> [options...]",
		Short:             MsgSelectShort,
		GroupID:           "mods",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: modNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			store, _, err := a.openMods()
			if err != nil {
				return err
			}

			mod, err := store.Find(args[0])
			if err != nil {
				return err
			}
			if err := store.SetOptions(mod.ID, args[1:], enabled); err != nil {
				return err
			}
			return a.message("success", fmt.Sprintf(MsgOptionsSet, mod.Name))
		},
	}

	cmd.Flags().StringArrayVar(&enabled, "enable", nil, MsgFlagEnable)
	return cmd
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "move <mod> <position>",
		Short:             MsgMoveShort,
		GroupID:           "mods",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: modNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return errors.Newf(errors.ErrInvalidInput, MsgErrPosition, args[1])
			}

			store, _, err := a.openMods()
			if err != nil {
				return err
			}
			mod, err := store.Find(args[0])
			if err != nil {
				return err
			}
			if err := store.Move(mod.ID, pos-1); err != nil {
				return err
			}
			return a.message("success", fmt.Sprintf(MsgModMoved, mod.Name, pos))
		},
	}
}
