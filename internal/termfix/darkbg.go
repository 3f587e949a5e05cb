// ABOUTME: Decides the terminal background for lipgloss before bubbletea initializes
// ABOUTME: Import with _ ahead of any package that imports bubbletea

package termfix

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	// An explicit background stops lipgloss from sending the OSC 10/11 query
	// whose late reply the live view would read as keystrokes.
	// This package must not import bubbletea, directly or transitively.
	lipgloss.SetHasDarkBackground(darkBackground(os.Getenv("COLORFGBG")))
}

// darkBackground interprets COLORFGBG ("fg;bg" or "fg;default;bg"). ANSI
// background colors 0-6 and 8 are dark; an absent or unparsable value is
// treated as dark.
func darkBackground(colorfgbg string) bool {
	fields := strings.Split(colorfgbg, ";")
	bg, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return true
	}
	return bg <= 6 || bg == 8
}
