package colors

import (
	"regexp"

	"github.com/fatih/color"
)

// Palette used by diagnostics and debug output. Every entry is a *color.Color,
// so callers get Fprint/Fprintf/Fprintln/Sprint/Sprintf for free.
var (
	RED    = color.New(color.FgRed)
	GREEN  = color.New(color.FgGreen)
	YELLOW = color.New(color.FgYellow)
	BLUE   = color.New(color.FgBlue)
	PURPLE = color.New(color.FgMagenta)
	CYAN   = color.New(color.FgCyan)
	GREY   = color.New(color.FgHiBlack)
	ORANGE = color.New(color.FgHiYellow)
	WHITE  = color.New(color.FgWhite)

	BOLD_RED    = color.New(color.FgRed, color.Bold)
	BOLD_GREEN  = color.New(color.FgGreen, color.Bold)
	BOLD_YELLOW = color.New(color.FgYellow, color.Bold)
	BOLD_CYAN   = color.New(color.FgCyan, color.Bold)
	BOLD_PURPLE = color.New(color.FgMagenta, color.Bold)
)

// SetEnabled toggles ANSI output globally. fatih/color already disables itself
// when stdout is not a terminal; this lets the config force either way.
func SetEnabled(enabled bool) {
	color.NoColor = !enabled
}

// Enabled reports whether escape sequences are currently emitted.
func Enabled() bool {
	return !color.NoColor
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// StripANSI removes ANSI color codes from a string
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
