package util

import (
	"os"

	"github.com/fatih/color"
)

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// InitColor disables colored output when the --no-color flag is set, when
// NO_COLOR is present in the environment, or when stdout is not a terminal.
func InitColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !IsTTY() {
		color.NoColor = true
	}
}
