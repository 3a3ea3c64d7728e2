// Package output configures terminal color handling for the step printer.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorProfile returns the color profile to use. NO_COLOR forces Ascii;
// otherwise the terminal's capabilities are detected.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Configure applies the detected color profile to the lipgloss renderer so
// step lines degrade cleanly on dumb terminals and in pipes.
func Configure() {
	lipgloss.DefaultRenderer().SetColorProfile(ColorProfile())
}
