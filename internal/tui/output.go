package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects between the interactive browser and plain output.
type OutputMode int

const (
	// OutputModePlain writes tables or JSON to stdout.
	OutputModePlain OutputMode = iota
	// OutputModeInteractive runs the Bubble Tea browser.
	OutputModeInteractive
)

func (m OutputMode) String() string {
	if m == OutputModeInteractive {
		return "interactive"
	}
	return "plain"
}

// DetectOutputMode returns OutputModeInteractive when stdout is a terminal
// that can host the browser.
func DetectOutputMode(forcePlain bool) OutputMode {
	return detectOutputMode(forcePlain, term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("TERM"))
}

func detectOutputMode(forcePlain, isTTY bool, termEnv string) OutputMode {
	if forcePlain || !isTTY || termEnv == "dumb" {
		return OutputModePlain
	}
	return OutputModeInteractive
}
