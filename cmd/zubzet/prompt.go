package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/terminal"
	"github.com/zubzet/tooling/internal/upgrade"
)

var (
	isTerminal  = terminal.IsInteractive
	runFormFunc = func(form *huh.Form) error { return form.Run() }
)

// newPrompter answers confirmations with a form on a terminal and a line reader otherwise.
// The line reader treats end of input as no.
func newPrompter(in io.Reader, out io.Writer) upgrade.Prompter {
	if isTerminal() {
		return upgrade.PromptFuncs{ConfirmFunc: confirmWithForm}
	}
	reader := bufio.NewReader(in)
	return upgrade.PromptFuncs{ConfirmFunc: func(question string) (bool, error) {
		return promptYesNo(reader, out, question, false)
	}}
}

// confirmWithForm renders a yes/no form. Esc and Ctrl+C decline.
func confirmWithForm(question string) (bool, error) {
	var answer bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative(messages.PromptAffirmative).
				Negative(messages.PromptNegative).
				Value(&answer),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return answer, nil
}

func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "decline"))
	return km
}

// promptYesNo asks a yes/no question and returns the user's choice or an error.
// defaultYes controls the result when the user provides an empty response.
func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
