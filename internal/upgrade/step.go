package upgrade

import (
	"fmt"

	"github.com/zubzet/tooling/internal/messages"
)

// Step is the identity and gate every modifier is built on.
// Its composed name "<tag>-<local>" is fixed at construction and is the only skip key.
type Step struct {
	version *Version
	name    string
	record  *StepRecord
}

// NewStep begins a step for v and announces it.
func NewStep(v *Version, local string) *Step {
	s := &Step{version: v, name: v.Tag + "-" + local}
	run := v.Run
	if run.Journal == nil {
		run.Journal = NewJournal()
	}
	record, duplicate := run.Journal.begin(v.Tag, s.name)
	record.DryRun = run.Config.Dry.Enabled()
	s.record = record

	p := s.Printer()
	p.Printf(messages.StepRunningFmt, s.name)
	if duplicate {
		p.Println(p.Comment(fmt.Sprintf(messages.StepDuplicateNameFmt, s.name, s.name)))
	}
	return s
}

// Name returns the composed step name.
func (s *Step) Name() string {
	return s.name
}

// Version returns the version the step belongs to.
func (s *Step) Version() *Version {
	return s.version
}

func (s *Step) run() *Run {
	return s.version.Run
}

// Printer returns the run's printer.
func (s *Step) Printer() *Printer {
	return s.run().Printer
}

// Sys returns the filesystem the step operates on.
func (s *Step) Sys() System {
	if s.run().Sys == nil {
		return RealSystem{}
	}
	return s.run().Sys
}

// Dry reports whether the run is currently in dry-run mode.
func (s *Step) Dry() bool {
	return s.run().Config.Dry.Enabled()
}

// Path resolves a project-relative path against the run root.
func (s *Step) Path(rel string) string {
	return s.run().Config.Path(rel)
}

// DiffMaxLines returns the configured diff cap.
func (s *Step) DiffMaxLines() int {
	return s.run().Config.DiffMaxLines
}

// ShouldSkip reports whether this step's name is in the run's skip set.
func (s *Step) ShouldSkip() bool {
	return s.run().Config.Skips(s.name)
}

// ConfirmAutomatedChange asks the operator whether to apply a proposed change.
// It never asks, and returns false, in dry-run or when the step is skipped.
func (s *Step) ConfirmAutomatedChange() (bool, error) {
	if s.Dry() || s.ShouldSkip() {
		return false, nil
	}
	prompter := s.run().Prompter
	if prompter == nil {
		prompter = PromptFuncs{}
	}
	s.Printer().Blank()
	return prompter.Confirm(messages.StepConfirmQuestion)
}

// AbortRequiringUserAction raises the abort signal for an unresolved manual-action requirement.
// A skipped step prints a notice and returns nil with its goal left unmet. In dry-run it
// returns nil so the rest of the plan is still reported. Otherwise it switches the run to
// dry-run and returns an *AbortError carrying the step name.
func (s *Step) AbortRequiringUserAction() error {
	p := s.Printer()
	if s.ShouldSkip() {
		p.Println(p.Comment(fmt.Sprintf(messages.StepSkippedContinueFmt, s.name)))
		s.record.Outcome = OutcomeSkippedWithNotice
		return nil
	}
	if s.Dry() {
		p.Println(p.Comment(fmt.Sprintf(messages.StepWouldAbortFmt, s.name)))
		s.record.Outcome = OutcomeNeedsUserAction
		return nil
	}
	s.run().Config.Dry.Enable()
	s.record.Outcome = OutcomeAborted
	return &AbortError{Step: s.name}
}

// MarkChanged records that the step mutated the tree, or would have outside dry-run.
func (s *Step) MarkChanged() {
	s.record.Changed = true
}
