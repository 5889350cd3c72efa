package messages

// Modifier messages. Arguments are pre-styled path or value segments.
const (
	FileNotFoundSkippingFmt = "File '%s' not found in folder '%s', skipping..."
	FileNoChangesFmt        = "No changes required for %s, skipping..."
	FileConcerningFmt       = "Concerning file: %s"
	FileAutomatedAvailable  = "An automated change is available to fix this issue."
	FileDiffHeader          = "Diff changes:"
	FileAutomatedNoDiffFmt  = "The automated change leaves %s unchanged."
	FileAutomatedAppliedFmt = "Automated change applied to %s"
	FileAutomatedInvalidFmt = "The automated change would leave %s unparseable (%v); it will not be offered."

	JSONNotFoundSkippingFmt = "JSON file %s not found. Skipping..."
	JSONNoChangesFmt        = "No changes made to %s. Skipping..."
	JSONModifyingFmt        = "Modifying JSON file %s..."
	JSONSetFailedFmt        = "failed to set %s: %w"
	JSONDeleteFailedFmt     = "failed to delete %s: %w"
	JSONTransformFailedFmt  = "transform of %s failed: %w"

	ComposerLockFile          = "composer.lock"
	ComposerPackageName       = "zubzet/framework"
	ComposerAlreadyAtFmt      = "Already at version %s, satisfying version %s. Skipping..."
	ComposerInvalidVersionFmt = "invalid version: %s"
	ComposerRequireFmt        = "composer require \"%s:%s\" --with-all-dependencies --ignore-platform-reqs"

	SettingsDefaultFile      = "z_config/z_settings.ini"
	SettingsAlreadyExistsFmt = "Property %s already exists, skipping addition."
	SettingsAddingFmt        = "Adding property %s with value '%s' to settings."
	SettingsMissingFmt       = "Property %s does not exist, skipping removal."
	SettingsWarningHeader    = "Warning:"
	SettingsWarningLineFmt   = "  %s"
	SettingsRemovingFmt      = "Removing property %s from settings."
	SettingsAlreadySetFmt    = "Property %s is already set to %s, skipping modification."
	SettingsModifyingFmt     = "Modifying property %s to have value %s in settings."
	SettingsCollapsedFmt     = "Styling %s to be collapsed into one."
	SettingsCollapsedRowsFmt = "%d consecutive empty rows"
	SettingsNoCollapse       = "No consecutive empty rows found, Skipping..."
	SettingsLastRowAdded     = "Styling last empty row to exist."
	SettingsLastRowPresent   = "Last row is already empty, Skipping..."
	SettingsNoChangesFmt     = "No changes to save in %s."

	FolderExistsFmt        = "Folder %s already exists, continuing..."
	FolderCreatingFmt      = "Creating folder %s"
	FolderAbsentFmt        = "Folder %s already does not exist, continuing..."
	FolderNotEmptyKeepFmt  = "Folder %s is not empty, keeping it..."
	FolderRemovingFmt      = "Removing empty folder %s"
	FolderSourceMissingFmt = "Source folder %s does not exist, skipping as allowed."
	FolderSamePathFmt      = "source and destination are the same: %q"
	FolderCycleFmt         = "refusing to move contents into a subdirectory of the source (%q is inside %q)"
	FolderMovingFmt        = "Moving %s file%s and %s director%s from %s to %s."

	MatchingFilesFmt    = "Matched %s files to check."
	MatchingChecksFmt   = "Made %s checks."
	MatchingInFmt       = "In: %s:%d"
	MatchingTotalFmt    = "Total issues found: %d"
	MatchingBadGlobFmt  = "invalid file filter %q: %w"
	MatchingReadFailFmt = "failed to scan %s: %w"

	IncludedExistsSameFmt      = "The target file %s already exists, skipping."
	IncludedExistsDifferentFmt = "The target file %s already exists, but the contents are different. It will be replaced."
	IncludedTargetMissingFmt   = "The target folder %s does not exist, skipping."
	IncludedCopyingFmt         = "Moving example file %s to %s"
	IncludedSourceRequired     = "no bundled source file selected; call From first"

	RemoveAlreadyGoneFmt = "File %s already removed. Skipping..."
	RemovingFileFmt      = "Removing file %s"
)
