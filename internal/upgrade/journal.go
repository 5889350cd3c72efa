package upgrade

import (
	"fmt"
	"io"

	"github.com/zubzet/tooling/internal/messages"
)

// Outcome is the typed result of one step.
type Outcome string

const (
	// OutcomeCompleted means the step ran to the end (changed or already applied).
	OutcomeCompleted Outcome = "completed"
	// OutcomeSkippedWithNotice means the step hit a manual-action requirement but was in the skip set.
	OutcomeSkippedWithNotice Outcome = "skipped_with_notice"
	// OutcomeNeedsUserAction means a dry run reached a point where a real run would abort.
	OutcomeNeedsUserAction Outcome = "needs_user_action"
	// OutcomeAborted means the step raised the abort signal.
	OutcomeAborted Outcome = "aborted"
)

// StepRecord is the journal entry for one step.
type StepRecord struct {
	Version string  `json:"version"`
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	// Changed is set when the step mutated the tree, or would have outside dry-run.
	Changed bool `json:"changed"`
	DryRun  bool `json:"dry_run"`
}

// Journal records every step begun during a run, in order.
type Journal struct {
	records []*StepRecord
	seen    map[string]int
}

// NewJournal returns an empty Journal.
func NewJournal() *Journal {
	return &Journal{seen: make(map[string]int)}
}

// begin appends a record and reports whether the name was already used in this run.
func (j *Journal) begin(version string, name string) (*StepRecord, bool) {
	record := &StepRecord{Version: version, Name: name, Outcome: OutcomeCompleted}
	j.records = append(j.records, record)
	j.seen[name]++
	return record, j.seen[name] > 1
}

// Records returns a copy of all records.
func (j *Journal) Records() []StepRecord {
	out := make([]StepRecord, 0, len(j.records))
	for _, record := range j.records {
		out = append(out, *record)
	}
	return out
}

// LastFor returns the most recent record for version.
func (j *Journal) LastFor(version string) (StepRecord, bool) {
	for i := len(j.records) - 1; i >= 0; i-- {
		if j.records[i].Version == version {
			return *j.records[i], true
		}
	}
	return StepRecord{}, false
}

// errWriter wraps an io.Writer and accumulates the first error encountered,
// allowing sequential writes without per-call error checks.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, args...)
}

// WriteReport writes the step journal in run order.
func WriteReport(out io.Writer, records []StepRecord) error {
	ew := &errWriter{w: out}
	ew.println(messages.ReportHeader)
	if len(records) == 0 {
		ew.println(messages.ReportNone)
		return ew.err
	}
	for _, record := range records {
		ew.printf(messages.ReportEntryFmt, record.Outcome, record.Name)
		if !record.Changed {
			continue
		}
		if record.DryRun {
			ew.println(messages.ReportChangedNote)
			continue
		}
		ew.println(messages.ReportChanged)
	}
	return ew.err
}
