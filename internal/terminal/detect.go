// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return IsInteractiveFiles(os.Stdin, os.Stdout)
}

// IsInteractiveFiles reports whether both files are attached to a terminal.
// A nil file is never interactive.
func IsInteractiveFiles(in *os.File, out *os.File) bool {
	if in == nil || out == nil {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}
