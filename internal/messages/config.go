package messages

// Config messages for the optional run configuration file.
const (
	// ConfigFileName is the run configuration looked up in the project root.
	ConfigFileName = "zubzet-upgrade.toml"

	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s contains unrecognized keys: %v"
	ConfigValidationGuidance  = "Check the keys against the [upgrade] and [output] tables."
	ConfigColorInvalidFmt     = "%s: output.color must be one of auto, always, never (got %q)"
	ConfigDiffLinesInvalidFmt = "%s: upgrade.diff_lines must not be negative (got %d)"
	ConfigSkipEmptyFmt        = "%s: upgrade.skip must not contain empty step names"
)
