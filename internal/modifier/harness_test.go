package modifier

import (
	"bytes"
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/zubzet/tooling/internal/testutil"
	"github.com/zubzet/tooling/internal/upgrade"
)

type harness struct {
	root    string
	out     *bytes.Buffer
	sys     *testutil.RecordingSystem
	run     *upgrade.Run
	prompts int
	answer  bool
	runner  *fakeRunner
}

type harnessOption func(h *harness)

func dry() harnessOption {
	return func(h *harness) { h.run.Config.Dry.Enable() }
}

func confirming() harnessOption {
	return func(h *harness) { h.answer = true }
}

func bundled(files fs.FS) harnessOption {
	return func(h *harness) { h.run.Files = files }
}

func newHarness(t *testing.T, files map[string]string, skip []string, opts ...harnessOption) *harness {
	t.Helper()
	root := t.TempDir()
	testutil.WriteTree(t, root, files)
	h := &harness{
		root:   root,
		out:    &bytes.Buffer{},
		sys:    testutil.NewRecordingSystem(),
		runner: &fakeRunner{},
	}
	h.run = &upgrade.Run{
		Config:   upgrade.NewRunConfig(root, false, skip),
		Printer:  upgrade.NewPrinter(h.out, upgrade.ColorNever),
		Commands: h.runner,
		Sys:      h.sys,
		Files:    fstest.MapFS{},
		Journal:  upgrade.NewJournal(),
	}
	h.run.Prompter = upgrade.PromptFuncs{ConfirmFunc: func(string) (bool, error) {
		h.prompts++
		return h.answer, nil
	}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *harness) version(tag string) *upgrade.Version {
	return &upgrade.Version{Tag: tag, Stability: upgrade.StabilityStable, Run: h.run}
}

func (h *harness) records() []upgrade.StepRecord {
	return h.run.Journal.Records()
}

type fakeRunner struct {
	exitCode int
	commands []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, command string) (upgrade.CommandResult, error) {
	f.commands = append(f.commands, command)
	return upgrade.CommandResult{ExitCode: f.exitCode}, nil
}
