package upgrade

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/zubzet/tooling/internal/messages"
)

// CommandResult is the outcome of one shell command.
type CommandResult struct {
	ExitCode int
	// Output holds combined stdout and stderr, one entry per line.
	Output []string
}

// CommandRunner executes a shell command in dir.
// A non-zero exit is reported through CommandResult, not as an error;
// errors mean the command could not be started at all.
type CommandRunner interface {
	Run(ctx context.Context, dir string, command string) (CommandResult, error)
}

// ShellRunner runs commands through a POSIX shell.
type ShellRunner struct {
	// Shell defaults to /bin/sh.
	Shell string
}

var execCommandContext = exec.CommandContext

// Run executes command with "<shell> -c" and captures combined output.
func (r ShellRunner) Run(ctx context.Context, dir string, command string) (CommandResult, error) {
	shell := r.Shell
	if strings.TrimSpace(shell) == "" {
		shell = "/bin/sh"
	}
	cmd := execCommandContext(ctx, shell, "-c", command)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	result := CommandResult{Output: splitOutputLines(out)}
	if err == nil {
		return result, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode <= 0 {
			result.ExitCode = 1
		}
		return result, nil
	}
	return result, fmt.Errorf(messages.CommandStartFailedFmt, command, err)
}

// splitOutputLines splits command output into lines of any length.
func splitOutputLines(out []byte) []string {
	text := strings.TrimRight(string(out), "\r\n")
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// RunCommand offers command as an alternative remediation for the step.
// It returns true only when the operator accepted and the command exited 0.
// In dry-run or for skipped steps the command is shown but never executed.
func (s *Step) RunCommand(ctx context.Context, command string) (bool, error) {
	p := s.Printer()
	p.Blank()
	p.Println(messages.CommandProposalHeader)
	p.Println(p.Info(command))

	ok, err := s.ConfirmAutomatedChange()
	if err != nil || !ok {
		return false, err
	}
	runner := s.run().Commands
	if runner == nil {
		return false, fmt.Errorf(messages.CommandRunnerRequiredFmt, s.name)
	}

	p.Printf(messages.CommandExecutingFmt, p.Comment(command))
	result, err := runner.Run(ctx, s.run().Config.Root, command)
	if err != nil {
		return false, err
	}
	if result.ExitCode == 0 {
		s.MarkChanged()
		return true, nil
	}
	p.Println(p.Error(fmt.Sprintf(messages.CommandExitCodeFmt, result.ExitCode)))
	for _, line := range result.Output {
		p.Printf(messages.CommandOutputLineFmt, line)
	}
	return false, nil
}
