package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// Styles for status output.
var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHighlight   = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
)

// Icons.
const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
)

// printSuccess prints a success message to stderr, so result JSON on stdout
// stays machine-readable.
func (c *CLI) printSuccess(format string, args ...any) {
	c.statusLine(styleIconSuccess, iconSuccess, format, args...)
}

// printError prints an error message to stderr.
func (c *CLI) printError(format string, args ...any) {
	c.statusLine(styleIconError, iconError, format, args...)
}

// printInfo prints a secondary status message to stderr.
func (c *CLI) printInfo(format string, args ...any) {
	c.statusLine(styleIconInfo, iconInfo, format, args...)
}

// printMeta prints muted metadata to stderr, without a status icon.
func (c *CLI) printMeta(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.Config.Output.Color {
		msg = styleDim.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}

// highlight styles a primary value for terminal output when color is on.
func (c *CLI) highlight(s string) string {
	if c.Config.Output.Color {
		return styleHighlight.Render(s)
	}
	return s
}

func (c *CLI) statusLine(style lipgloss.Style, icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.Config.Output.Color {
		fmt.Fprintln(os.Stderr, style.Render(icon)+" "+msg)
		return
	}
	fmt.Fprintln(os.Stderr, icon+" "+msg)
}
