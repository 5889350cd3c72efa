package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "zubzet"
	// RootShort is the short description for the root command.
	RootShort       = "ZubZet Tooling"
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// UpgradeUse is the upgrade command usage.
	UpgradeUse          = "upgrade <location> <from> <to>"
	UpgradeShort        = "Upgrade a ZubZet project from one version to another"
	UpgradeLong         = "Upgrade a ZubZet project in place, one version at a time.\n\nEvery step is named <version>-<step>. A step that requires manual action aborts the run and prints the --skip flag that bypasses it."
	UpgradeArgsFmt      = "upgrade requires exactly 3 arguments (location, from, to), received %d"
	UpgradeFlagDry      = "Dry-run: show what would be executed without making changes"
	UpgradeFlagSkip     = "Steps to skip (can be used multiple times, e.g. -s 1.0.0-settings -s 1.0.0-webroot-htaccess)"
	UpgradeFlagConfig   = "Path to a zubzet-upgrade.toml run configuration (default: <location>/zubzet-upgrade.toml when present)"
	UpgradeFlagDiffLine = "Maximum number of diff lines shown per automated change"
	UpgradeFlagColor    = "Colorize output: auto, always, or never"

	UpgradeColorInvalidFmt     = "invalid --color %q: must be one of auto, always, never"
	UpgradeDiffLinesInvalidFmt = "invalid --diff-lines %d: must not be negative"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt   = "%s [Y/n]: "
	PromptNoDefaultFmt    = "%s [y/N]: "
	PromptInvalidResponse = "invalid response %q"
	PromptRetryYesNo      = "Please enter y or n."
	PromptHandlerRequired = "confirmation prompts require a prompt handler"
	PromptAffirmative     = "Yes"
	PromptNegative        = "No"

	// ExitErrorFmt prints the error that ends the process.
	ExitErrorFmt = "Error: %v\n"
)
