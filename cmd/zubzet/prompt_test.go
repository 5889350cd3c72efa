package main

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestPromptYesNo(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "long no", input: "No\n", defaultYes: true, want: false},
		{name: "empty takes default", input: "\n", defaultYes: true, want: true},
		{name: "eof declines", input: "", defaultYes: true, want: false},
		{name: "retry then yes", input: "maybe\nyes\n", want: true},
		{name: "invalid at eof", input: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptYesNo(bufio.NewReader(strings.NewReader(tt.input)), &out, "Apply?", tt.defaultYes)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPromptYesNo_ShowsDefault(t *testing.T) {
	var out bytes.Buffer
	if _, err := promptYesNo(bufio.NewReader(strings.NewReader("n\n")), &out, "Apply?", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "Apply? [y/N]: " {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestNewPrompter_LineReaderSharesInput(t *testing.T) {
	origTerminal := isTerminal
	defer func() { isTerminal = origTerminal }()
	isTerminal = func() bool { return false }

	var out bytes.Buffer
	prompter := newPrompter(strings.NewReader("y\nn\n"), &out)
	first, err := prompter.Confirm("first?")
	if err != nil || !first {
		t.Fatalf("expected yes, got %v (%v)", first, err)
	}
	second, err := prompter.Confirm("second?")
	if err != nil || second {
		t.Fatalf("expected no, got %v (%v)", second, err)
	}
}

func TestConfirmWithForm(t *testing.T) {
	origRun := runFormFunc
	defer func() { runFormFunc = origRun }()

	runFormFunc = func(*huh.Form) error { return huh.ErrUserAborted }
	ok, err := confirmWithForm("Apply?")
	if err != nil || ok {
		t.Fatalf("aborted form must decline, got %v (%v)", ok, err)
	}

	runFormFunc = func(*huh.Form) error { return errors.New("tty gone") }
	if _, err := confirmWithForm("Apply?"); err == nil || err.Error() != "tty gone" {
		t.Fatalf("expected form error, got %v", err)
	}

	runFormFunc = func(*huh.Form) error { return nil }
	ok, err = confirmWithForm("Apply?")
	if err != nil || ok {
		t.Fatalf("untouched form keeps the default no, got %v (%v)", ok, err)
	}
}
