package upgrade

import (
	"bytes"
	"context"
	"testing"
)

type testRun struct {
	run *Run
	out *bytes.Buffer
}

func newTestRun(t *testing.T, dry bool, skip ...string) *testRun {
	t.Helper()
	out := &bytes.Buffer{}
	return &testRun{
		run: &Run{
			Config:  NewRunConfig(t.TempDir(), dry, skip),
			Printer: NewPrinter(out, ColorNever),
			Sys:     RealSystem{},
			Journal: NewJournal(),
		},
		out: out,
	}
}

func (tr *testRun) version(tag string) *Version {
	return &Version{Tag: tag, Stability: StabilityStable, Run: tr.run}
}

func answer(value bool) Prompter {
	return PromptFuncs{ConfirmFunc: func(string) (bool, error) { return value, nil }}
}

type countingPrompter struct {
	answer bool
	calls  int
}

func (c *countingPrompter) Confirm(string) (bool, error) {
	c.calls++
	return c.answer, nil
}

type fakeRunner struct {
	result   CommandResult
	err      error
	commands []string
	dirs     []string
}

func (f *fakeRunner) Run(_ context.Context, dir string, command string) (CommandResult, error) {
	f.commands = append(f.commands, command)
	f.dirs = append(f.dirs, dir)
	return f.result, f.err
}
