package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Helldivers 2 mod manager"
	MsgDeployShort     = "Deploy enabled mods into the game"
	MsgPurgeShort      = "Remove the files of the last deployment"
	MsgHardPurgeShort  = "Remove every patch file from the game data directory"
	MsgStatusShort     = "Check the deployed files against the record"
	MsgListShort       = "List stored mods in profile order"
	MsgAddShort        = "Add extracted mod directories to storage"
	MsgRemoveShort     = "Delete mods from storage"
	MsgEnableShort     = "Enable mods"
	MsgDisableShort    = "Disable mods"
	MsgSelectShort     = "Choose the options of a mod"
	MsgMoveShort       = "Move a mod to a position in the deployment order"
	MsgSettingsShort   = "Show or change settings"
	MsgSettingsShow    = "Show the effective settings"
	MsgSettingsSet     = "Change one setting"
	MsgDetectShort     = "Look for the game installation in Steam libraries"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgModEvent        = "%s %s"
	MsgModEnabled      = "Enabled %s"
	MsgModDisabled     = "Disabled %s"
	MsgModMoved        = "Moved %s to position %d"
	MsgOptionsSet      = "Options of %s updated"
	MsgSettingSaved    = "Set %s in %s"
	MsgGameDirSaved    = "Saved game_dir %s"
	MsgHardPurgeAsk    = "Delete every patch file in %s?"
	MsgHardPurgeCancel = "Hard purge canceled"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrPosition  = "position must be a number starting at 1, got %q"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview a deployment without writing any file"
	MsgFlagConfig  = "Settings file (default $XDG_CONFIG_HOME/hd2mm/settings.toml)"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagGameDir = "Use this game directory instead of the configured one"
	MsgFlagYes     = "Do not ask for confirmation"
	MsgFlagEnable  = "Enable an option independently (version 1 mods, repeatable)"
	MsgFlagNoCheck = "Store game_dir without checking the installation"
	MsgFlagSave    = "Save the detected directory as game_dir"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/deploy-long.txt
	msgDeployLongRaw string
	MsgDeployLong    = strings.TrimSpace(msgDeployLongRaw)

	//go:embed msgs/hard-purge-long.txt
	msgHardPurgeLongRaw string
	MsgHardPurgeLong    = strings.TrimSpace(msgHardPurgeLongRaw)
)

const MsgDeployExample = `  # Deploy every enabled mod in profile order
  hd2mm deploy

  # Deploy two mods, the second one winning conflicts
  hd2mm deploy "Better Armor" "Red Capes"

  # Show what would be written
  hd2mm deploy --dry-run`
