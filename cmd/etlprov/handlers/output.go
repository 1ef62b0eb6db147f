package handlers

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorAmber = lipgloss.Color("#f59e0b")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle    = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle    = lipgloss.NewStyle().Foreground(colorAmber)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// Terminal detection, replaceable in tests.
var (
	stdoutIsTerminal = func() bool { return isTerminal(os.Stdout.Fd()) }
	stdinIsTerminal  = func() bool { return isTerminal(os.Stdin.Fd()) }
)

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// styled renders s with style when stdout is a terminal and returns it
// unchanged otherwise, so redirected output stays free of escape codes.
func styled(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return style.Render(s)
}

func okMark() string   { return styled(okStyle, "OK  ") }
func failMark() string { return styled(failStyle, "FAIL") }
func warnMark() string { return styled(warnStyle, "WARN") }

// maskedValue replaces secret values in operator output.
const maskedValue = "********"
