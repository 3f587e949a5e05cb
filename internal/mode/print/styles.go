// ABOUTME: Lipgloss styles for print-mode text output and markdown rendering of the final answer
// ABOUTME: Markdown goes through glamour only when writing to a terminal

package print

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	thoughtStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

// Terminal reports whether f is a terminal and its width in cells.
func Terminal(f *os.File) (bool, int) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false, DefaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return true, DefaultWidth
	}
	return true, w
}

// renderMarkdown renders md for a terminal of the given width, falling back to raw text.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n ")
}
