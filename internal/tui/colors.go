package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var colorEnabled = detectColor()

// detectColor reports whether styled output should be emitted. Colors are
// suppressed when stdout is not a terminal or the terminal reports no color
// support.
func detectColor() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

func render(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

// ColorMerged styles a successfully merged branch name.
func ColorMerged(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("2")), text)
}

// ColorConflicted styles a conflicting branch name.
func ColorConflicted(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("1")), text)
}

// ColorUnref styles a branch name that was not found on the remote.
func ColorUnref(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("3")), text)
}

// ColorBranch styles a plain branch name.
func ColorBranch(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("12")), text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return render(lipgloss.NewStyle().Foreground(lipgloss.Color("8")), text)
}
