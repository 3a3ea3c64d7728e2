// Package style provides shared styling primitives for the build step lines
// printed while the driver works.
package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Step colors.
var (
	Blue    = lipgloss.Color("#3B82F6")
	Yellow  = lipgloss.Color("#F59E0B")
	Magenta = lipgloss.Color("#C026D3")
	Green   = lipgloss.Color("#22A06B")
	Red     = lipgloss.Color("#D93025")
)

// Icons.
const (
	Check = "✔"
	Cross = "✖"
)

var labelStyle = lipgloss.NewStyle().Bold(true).Width(10)

// Step prints one build-step line: a colored, left-aligned label followed by
// the step's detail.
func Step(w io.Writer, color lipgloss.Color, label, format string, args ...any) {
	rendered := labelStyle.Foreground(color).Render(label)
	_, _ = fmt.Fprintf(w, "%s %s\n", rendered, fmt.Sprintf(format, args...))
}

// Status prints a final check or cross line.
func Status(w io.Writer, ok bool, format string, args ...any) {
	icon := lipgloss.NewStyle().Foreground(Green).Render(Check)
	if !ok {
		icon = lipgloss.NewStyle().Foreground(Red).Render(Cross)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
