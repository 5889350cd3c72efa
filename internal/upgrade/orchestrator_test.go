package upgrade

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trace struct {
	calls []string
}

func (tr *trace) script(tag string, body func(ctx context.Context, v *Version) error) Entry {
	return Entry{Tag: tag, Script: ScriptFunc(func(ctx context.Context, v *Version) error {
		tr.calls = append(tr.calls, v.Tag)
		if body == nil {
			return nil
		}
		return body(ctx, v)
	})}
}

func newTestOrchestrator(t *testing.T, entries ...Entry) (*Orchestrator, *bytes.Buffer) {
	t.Helper()
	reg, err := NewRegistry([]string{"0.10.0", "0.11.0", "1.0.0"}, entries...)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	o, err := NewOrchestrator(Options{
		Registry: reg,
		Printer:  NewPrinter(out, ColorNever),
		Prompter: answer(false),
		Commands: &fakeRunner{},
	})
	require.NoError(t, err)
	return o, out
}

func TestNewOrchestrator_RequiresCollaborators(t *testing.T) {
	reg, err := NewRegistry([]string{"1.0.0"})
	require.NoError(t, err)

	_, err = NewOrchestrator(Options{})
	assert.EqualError(t, err, "upgrade registry is required")
	_, err = NewOrchestrator(Options{Registry: reg})
	assert.EqualError(t, err, "upgrade printer is required")
	_, err = NewOrchestrator(Options{Registry: reg, Printer: NewPrinter(nil, ColorNever)})
	assert.EqualError(t, err, "upgrade prompter is required")
}

func TestOrchestratorRun_ExecutesInAscendingOrder(t *testing.T) {
	tr := &trace{}
	o, out := newTestOrchestrator(t, tr.script("1.0.0", nil), tr.script("0.11.0", nil))

	report, err := o.Run(context.Background(), Request{Location: t.TempDir(), From: "0.10.0", To: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0.11.0", "1.0.0"}, tr.calls)
	assert.Equal(t, []string{"0.11.0", "1.0.0"}, report.Planned)
	assert.True(t, report.Completed)
	assert.Contains(t, out.String(), "Planning upgrade from 0.10.0 to 1.0.0 (in 2 steps)")
	assert.Contains(t, out.String(), "Upgrading 0.10.0 -> 0.11.0")
	assert.Contains(t, out.String(), "Upgrading 0.11.0 -> 1.0.0")
	assert.Contains(t, out.String(), "Upgrade complete")
	assert.Contains(t, out.String(), "Step report:")
}

func TestOrchestratorRun_SingleStepTitle(t *testing.T) {
	tr := &trace{}
	o, out := newTestOrchestrator(t, tr.script("1.0.0", nil), tr.script("0.11.0", nil))

	_, err := o.Run(context.Background(), Request{Location: t.TempDir(), From: "0.11.0", To: "1.0.0", Dry: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Dry-run mode: no changes will be made.")
	assert.Contains(t, out.String(), "(in 1 step)")
}

func TestOrchestratorRun_LocationValidatedFirst(t *testing.T) {
	tr := &trace{}
	o, _ := newTestOrchestrator(t, tr.script("1.0.0", nil))
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	for _, location := range []string{"", filepath.Join(t.TempDir(), "missing"), file} {
		_, err := o.Run(context.Background(), Request{Location: location, From: "bogus", To: "1.0.0"})
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr, location)
		assert.Equal(t, "location", cfgErr.Argument)
	}
	assert.Empty(t, tr.calls)
}

func TestOrchestratorRun_MissingScriptRunsNothing(t *testing.T) {
	tr := &trace{}
	o, _ := newTestOrchestrator(t, tr.script("1.0.0", nil))

	_, err := o.Run(context.Background(), Request{Location: t.TempDir(), From: "0.10.0", To: "1.0.0"})
	var missing *UnknownVersionScriptError
	require.ErrorAs(t, err, &missing)
	assert.Empty(t, tr.calls)
}

func TestOrchestratorRun_AbortStopsRunAndNamesStep(t *testing.T) {
	tr := &trace{}
	o, out := newTestOrchestrator(t,
		tr.script("0.11.0", func(_ context.Context, v *Version) error {
			NewStep(v, "settings")
			return NewStep(v, "mail-docker").AbortRequiringUserAction()
		}),
		tr.script("1.0.0", nil),
	)

	report, err := o.Run(context.Background(), Request{Location: t.TempDir(), From: "0.10.0", To: "1.0.0"})
	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "0.10.0", transition.From)
	assert.Equal(t, "0.11.0", transition.To)
	assert.Equal(t, "0.11.0-mail-docker", transition.Step)
	var abort *AbortError
	require.ErrorAs(t, err, &abort)
	assert.Equal(t, []string{"0.11.0"}, tr.calls, "no later script may run after an abort")
	assert.False(t, report.Completed)
	require.Len(t, report.Steps, 2)
	assert.Equal(t, OutcomeAborted, report.Steps[1].Outcome)
	assert.NotContains(t, out.String(), "Upgrade complete")
	assert.Contains(t, out.String(), "[aborted] 0.11.0-mail-docker")
}

func TestOrchestratorRun_SkipLetsRunContinue(t *testing.T) {
	tr := &trace{}
	o, _ := newTestOrchestrator(t,
		tr.script("0.11.0", func(_ context.Context, v *Version) error {
			return NewStep(v, "mail-docker").AbortRequiringUserAction()
		}),
		tr.script("1.0.0", nil),
	)

	report, err := o.Run(context.Background(), Request{
		Location: t.TempDir(), From: "0.10.0", To: "1.0.0", Skip: []string{"0.11.0-mail-docker"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0.11.0", "1.0.0"}, tr.calls)
	assert.Equal(t, OutcomeSkippedWithNotice, report.Steps[0].Outcome)
}

func TestOrchestratorRun_ScriptErrorNamesLastStep(t *testing.T) {
	tr := &trace{}
	boom := errors.New("disk full")
	o, _ := newTestOrchestrator(t,
		tr.script("0.11.0", nil),
		tr.script("1.0.0", func(_ context.Context, v *Version) error {
			NewStep(v, "move-controllers")
			return boom
		}),
	)

	_, err := o.Run(context.Background(), Request{Location: t.TempDir(), From: "0.10.0", To: "1.0.0"})
	require.ErrorIs(t, err, boom)
	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "1.0.0-move-controllers", transition.Step)
	assert.Contains(t, err.Error(), "migration 0.11.0 -> 1.0.0 failed in step 1.0.0-move-controllers")
}

func TestOrchestratorRun_CancelledContext(t *testing.T) {
	tr := &trace{}
	o, out := newTestOrchestrator(t, tr.script("0.11.0", nil), tr.script("1.0.0", nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Run(ctx, Request{Location: t.TempDir(), From: "0.10.0", To: "1.0.0"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, tr.calls)
	assert.Contains(t, out.String(), "Step report:\n  - (none)\n")
}

func TestOrchestratorRun_ExpandsHomeLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.Reset()
	t.Cleanup(homedir.Reset)
	require.NoError(t, os.Mkdir(filepath.Join(home, "project"), 0o755))
	tr := &trace{}
	o, _ := newTestOrchestrator(t, tr.script("0.11.0", nil), tr.script("1.0.0", nil))

	report, err := o.Run(context.Background(), Request{Location: "~/project", From: "0.11.0", To: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "project"), report.Root)
}
