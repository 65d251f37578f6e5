// Package wizard holds the interactive prompts used by the CLI.
package wizard

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTerminal returns true if stdin is a terminal.
func IsInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// CanInteract returns true if both ends of the terminal are attached, so a
// form can be shown and answered.
func CanInteract() bool {
	return IsTerminal() && IsInputTerminal()
}
