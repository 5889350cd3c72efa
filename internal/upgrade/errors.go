package upgrade

import (
	"fmt"
	"strings"

	"github.com/zubzet/tooling/internal/messages"
)

// ConfigurationError reports invalid run arguments. The run never starts.
type ConfigurationError struct {
	// Argument names the offending input: location, from, to, or range.
	Argument string
	Value    string
	Known    []string
	msg      string
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

func newLocationError(location string) *ConfigurationError {
	return &ConfigurationError{
		Argument: "location",
		Value:    location,
		msg:      fmt.Sprintf(messages.UpgradeInvalidLocationFmt, location),
	}
}

func newUnknownVersionError(argument string, value string, known []string) *ConfigurationError {
	return &ConfigurationError{
		Argument: argument,
		Value:    value,
		Known:    append([]string(nil), known...),
		msg:      fmt.Sprintf(messages.UpgradeUnknownVersionFmt, argument, value, strings.Join(known, ", ")),
	}
}

func newRangeError(from string, to string) *ConfigurationError {
	return &ConfigurationError{
		Argument: "range",
		Value:    from + ".." + to,
		msg:      fmt.Sprintf(messages.UpgradeInvalidRangeFmt, from, to),
	}
}

// PreconditionKind classifies a PreconditionError.
type PreconditionKind string

const (
	// FileNotFound means a required file could not be located.
	FileNotFound PreconditionKind = "file_not_found"
	// MissingDirectory means a required directory does not exist.
	MissingDirectory PreconditionKind = "missing_directory"
	// InvalidJSON means a JSON document failed to parse.
	InvalidJSON PreconditionKind = "invalid_json"
	// MissingBundledFile means a reference file is not shipped for the version.
	MissingBundledFile PreconditionKind = "missing_bundled_file"
)

// PreconditionError is fatal to the current step unless the step is optional.
type PreconditionError struct {
	Kind PreconditionKind
	Path string
	// Folder is the search root for FileNotFound.
	Folder string
	Err    error
}

func (e *PreconditionError) Error() string {
	var msg string
	switch e.Kind {
	case FileNotFound:
		msg = fmt.Sprintf(messages.PreconditionFileNotFoundFmt, e.Path, e.Folder)
	case MissingDirectory:
		msg = fmt.Sprintf(messages.PreconditionMissingDirectoryFmt, e.Path)
	case InvalidJSON:
		msg = fmt.Sprintf(messages.PreconditionInvalidJSONFmt, e.Path)
	case MissingBundledFile:
		msg = fmt.Sprintf(messages.PreconditionMissingBundledFmt, e.Path)
	default:
		msg = fmt.Sprintf(messages.PreconditionGenericFmt, e.Kind, e.Path)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// AbortError is the abort signal: a step needs manual action or an explicit skip.
type AbortError struct {
	Step string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf(messages.AbortRequiringUserActionFmt, e.Step)
}

// SkipFlag returns the exact flag that bypasses the aborted step.
func (e *AbortError) SkipFlag() string {
	return "--skip " + e.Step
}

// UnknownVersionScriptError means no script is registered for a planned version.
type UnknownVersionScriptError struct {
	Tag string
}

func (e *UnknownVersionScriptError) Error() string {
	return fmt.Sprintf(messages.UpgradeUnknownScriptFmt, e.Tag)
}

// TransitionError wraps the failure of one version transition.
type TransitionError struct {
	From string
	To   string
	// Step is the last step begun in the transition, empty when none ran.
	Step string
	Err  error
}

func (e *TransitionError) Error() string {
	var head string
	if e.Step != "" {
		head = fmt.Sprintf(messages.UpgradeTransitionStepFmt, e.From, e.To, e.Step)
	} else {
		head = fmt.Sprintf(messages.UpgradeTransitionFailedFmt, e.From, e.To)
	}
	if e.Err == nil {
		return head
	}
	return head + ": " + e.Err.Error()
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
