package messages

// Orchestrator and step-gate messages.
const (
	UpgradeDryRunNotice         = "Dry-run mode: no changes will be made."
	UpgradeInvalidLocationFmt   = "invalid project location: %s"
	UpgradeUnknownVersionFmt    = "unknown %q version: %s (available versions: %s)"
	UpgradeInvalidRangeFmt      = "invalid range: \"from\" (%s) must be earlier than \"to\" (%s)"
	UpgradePlanningTitleFmt     = "Planning upgrade from %s to %s (in %d step%s)"
	UpgradeTransitionSectionFmt = "Upgrading %s -> %s"
	UpgradeCompleteTitle        = "Upgrade complete"
	UpgradeTransitionFailedFmt  = "migration %s -> %s reported failure"
	UpgradeTransitionStepFmt    = "migration %s -> %s failed in step %s"
	UpgradeUnknownScriptFmt     = "no migration script registered for target version %s; aborting"
	UpgradeRegistryRequired     = "upgrade registry is required"
	UpgradePrinterRequired      = "upgrade printer is required"
	UpgradePrompterRequired     = "upgrade prompter is required"
	UpgradeInvalidTagFmt        = "invalid version tag %q: %w"
	UpgradeDuplicateTagFmt      = "duplicate version tag %s"
	UpgradeScriptUnknownTagFmt  = "script registered for unknown version tag %s"
	UpgradeDuplicateScriptFmt   = "duplicate script for version tag %s"
	UpgradeScriptRequiredFmt    = "script for version tag %s is nil"

	StepRunningFmt         = "==> Running '%s' ..."
	StepDuplicateNameFmt   = "Step name '%s' is used more than once; --skip %s applies to every occurrence."
	StepSkippedContinueFmt = "Step '%s' is skipped, continuing..."
	StepWouldAbortFmt      = "Step '%s' requires user action; a real run would abort here."
	StepConfirmQuestion    = "Do you want to apply the automated change now?"

	// AbortRequiringUserActionFmt is the abort signal message; the step name fills the skip flag.
	AbortRequiringUserActionFmt = "The upgrade process was aborted and requires user action before continuing.\n" +
		"Please read the output above for details and make the necessary changes.\n" +
		"\n" +
		"Skip this step by adding: --skip %s\n" +
		"You can also use the shortcut: -s\n" +
		"You may add multiple steps to skip using -s step1 -s step2"

	CommandProposalHeader    = "You can run the following command to fix this issue:"
	CommandExecutingFmt      = "Executing command %s ..."
	CommandExitCodeFmt       = "Command exited with code %d, please check the output:"
	CommandOutputLineFmt     = "\t%s"
	CommandStartFailedFmt    = "failed to run command %q: %w"
	CommandRunnerRequiredFmt = "step %s requires a command runner"

	DiffTruncatedFmt = "... (truncated to %d lines; rerun with --diff-lines <n> to see more)"

	ReportHeader      = "Step report:"
	ReportEntryFmt    = "  - [%s] %s\n"
	ReportChangedNote = "    changed: yes (dry-run: would change)"
	ReportChanged     = "    changed: yes"
	ReportNone        = "  - (none)"

	PreconditionFileNotFoundFmt     = "file %q not found in folder %q"
	PreconditionMissingDirectoryFmt = "directory %q does not exist"
	PreconditionInvalidJSONFmt      = "failed to parse JSON file %q"
	PreconditionMissingBundledFmt   = "the bundled file %q does not exist"
	PreconditionGenericFmt          = "precondition %s failed for %q"

	FailedReadFmt      = "failed to read %s: %w"
	FailedWriteFmt     = "failed to write %s: %w"
	FailedStatFmt      = "failed to stat %s: %w"
	FailedCreateDirFmt = "failed to create folder %s: %w"
	FailedRemoveFmt    = "failed to remove %s: %w"
	FailedCopyFmt      = "failed to copy %s to %s: %w"
)
