package tui

import (
	"github.com/opencatalog/catalogctl/internal/util"
	"github.com/spf13/cobra"
)

// ShouldUseTUI returns true if the command should use interactive TUI mode.
// TUI mode is enabled when:
// - stdout is a TTY (not piped or redirected)
// - no output format flags are set (indicates scripting intent)
func ShouldUseTUI(cmd *cobra.Command) bool {
	if !util.IsTTY() {
		return false
	}
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return false
	}
	return true
}
