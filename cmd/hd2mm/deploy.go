package main

import (
	"fmt"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/datastore"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/logging"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/state"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui"
	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newDeployCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "deploy [mods...]",
		Short:             MsgDeployShort,
		Long:              MsgDeployLong,
		Example:           MsgDeployExample,
		GroupID:           "deploy",
		ValidArgsFunction: modNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			logger := logging.GetLogger("cmd.deploy")

			if err := a.settings.ValidateForDeploy(); err != nil {
				return err
			}
			store, p, err := a.openMods()
			if err != nil {
				return err
			}
			engine := a.engine(store, p)

			order := store.DeploymentOrder()
			if len(args) > 0 {
				order = store.Resolve(args)
			}
			logger.Info().
				Bool("dryRun", opts.dryRun).
				Int("mods", len(order)).
				Str("dataDir", p.GameDataDir()).
				Msg("Starting deploy")

			if opts.dryRun {
				plan, err := engine.Plan(cmd.Context(), order)
				if plan == nil {
					return err
				}
				return a.report(display.FromPlan(plan), err)
			}

			result, err := engine.Deploy(cmd.Context(), order)
			if result == nil || (err != nil && !errors.IsErrorCode(err, errors.ErrModsExcluded)) {
				return err
			}
			return a.report(display.FromResult(result), err)
		},
	}
}

func newPurgeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "purge",
		Short:   MsgPurgeShort,
		GroupID: "deploy",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			store, p, err := a.openMods()
			if err != nil {
				return err
			}

			result, err := a.engine(store, p).Purge(cmd.Context())
			if err != nil {
				return err
			}
			return a.report(display.FromPurge(result, false), nil)
		},
	}
}

func newHardPurgeCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "hard-purge",
		Short:   MsgHardPurgeShort,
		Long:    MsgHardPurgeLong,
		GroupID: "deploy",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			p, err := a.paths(true)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := ui.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf(MsgHardPurgeAsk, p.GameDataDir()))
				if err != nil {
					return err
				}
				if !ok {
					return a.message("info", MsgHardPurgeCancel)
				}
			}

			store, _, err := a.openMods()
			if err != nil {
				return err
			}
			result, err := a.engine(store, p).HardPurge(cmd.Context())
			if err != nil {
				return err
			}
			return a.report(display.FromPurge(result, true), nil)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "deploy",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			p, err := a.paths(false)
			if err != nil {
				return err
			}

			report, err := state.NewVerifier(a.fs, datastore.New(a.fs, p)).Verify()
			if err != nil {
				return err
			}
			return a.report(display.FromReport(report), nil)
		},
	}
}
