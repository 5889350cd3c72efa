package upgrade

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/zubzet/tooling/internal/messages"
)

// Options configures an Orchestrator.
type Options struct {
	Registry *Registry
	Printer  *Printer
	Prompter Prompter
	// Commands defaults to ShellRunner.
	Commands CommandRunner
	// System defaults to RealSystem.
	System System
	// Files holds bundled reference files laid out as <tag>/<name>.
	Files        fs.FS
	DiffMaxLines int
}

// Request is one invocation of the upgrade command.
type Request struct {
	Location string
	From     string
	To       string
	Dry      bool
	Skip     []string
}

// Report summarizes a run.
type Report struct {
	Root      string       `json:"root"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Planned   []string     `json:"planned"`
	Steps     []StepRecord `json:"steps"`
	Completed bool         `json:"completed"`
}

// Orchestrator runs version scripts strictly in ascending order.
// It validates input and sequences scripts; it never modifies the project itself.
type Orchestrator struct {
	opts Options
}

// NewOrchestrator validates opts and fills defaults.
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Registry == nil {
		return nil, errors.New(messages.UpgradeRegistryRequired)
	}
	if opts.Printer == nil {
		return nil, errors.New(messages.UpgradePrinterRequired)
	}
	if opts.Prompter == nil {
		return nil, errors.New(messages.UpgradePrompterRequired)
	}
	if opts.Commands == nil {
		opts.Commands = ShellRunner{}
	}
	if opts.System == nil {
		opts.System = RealSystem{}
	}
	return &Orchestrator{opts: opts}, nil
}

// Run executes the upgrade described by req. Validation problems return a
// *ConfigurationError or *UnknownVersionScriptError before anything runs; a failing
// script stops the run with a *TransitionError naming the transition and step.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Report, error) {
	p := o.opts.Printer
	report := Report{From: req.From, To: req.To}

	root, err := o.resolveLocation(req.Location)
	if err != nil {
		return report, err
	}
	report.Root = root

	transitions, err := o.opts.Registry.Plan(req.From, req.To)
	if err != nil {
		return report, err
	}
	for _, t := range transitions {
		report.Planned = append(report.Planned, t.To)
	}

	cfg := NewRunConfig(root, req.Dry, req.Skip)
	cfg.DiffMaxLines = o.opts.DiffMaxLines
	run := &Run{
		Config:   cfg,
		Printer:  p,
		Prompter: o.opts.Prompter,
		Commands: o.opts.Commands,
		Sys:      o.opts.System,
		Files:    o.opts.Files,
		Journal:  NewJournal(),
	}

	if req.Dry {
		p.Println(messages.UpgradeDryRunNotice)
	}
	plural := "s"
	if len(transitions) == 1 {
		plural = ""
	}
	p.Title(fmt.Sprintf(messages.UpgradePlanningTitleFmt, req.From, req.To, len(transitions), plural))

	for _, t := range transitions {
		if err := ctx.Err(); err != nil {
			report.Steps = run.Journal.Records()
			o.writeReport(report.Steps)
			return report, &TransitionError{From: t.From, To: t.To, Err: err}
		}
		p.Blank()
		p.Section(fmt.Sprintf(messages.UpgradeTransitionSectionFmt, t.From, t.To))

		v := &Version{Tag: t.To, Stability: t.Entry.Stability, Run: run}
		if err := t.Entry.Script.Upgrade(ctx, v); err != nil {
			report.Steps = run.Journal.Records()
			o.writeReport(report.Steps)
			return report, &TransitionError{From: t.From, To: t.To, Step: failedStep(run.Journal, t.To, err), Err: err}
		}
	}

	report.Steps = run.Journal.Records()
	report.Completed = true
	p.Blank()
	p.Title(messages.UpgradeCompleteTitle)
	o.writeReport(report.Steps)
	return report, p.Err()
}

func (o *Orchestrator) writeReport(records []StepRecord) {
	p := o.opts.Printer
	p.Blank()
	if err := WriteReport(p.Writer(), records); err != nil && p.err == nil {
		p.err = err
	}
}

func (o *Orchestrator) resolveLocation(location string) (string, error) {
	if strings.TrimSpace(location) == "" {
		return "", newLocationError(location)
	}
	expanded, err := homedir.Expand(location)
	if err != nil {
		return "", newLocationError(location)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", newLocationError(location)
	}
	info, err := o.opts.System.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", newLocationError(location)
	}
	return abs, nil
}

// failedStep names the step a script failed in: the aborting step for an abort signal,
// otherwise the last step begun for the version.
func failedStep(journal *Journal, version string, err error) string {
	var abort *AbortError
	if errors.As(err, &abort) {
		return abort.Step
	}
	if record, ok := journal.LastFor(version); ok {
		return record.Name
	}
	return ""
}
