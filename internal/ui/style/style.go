// Package style holds the colors and icons shared by the log handler, the linear report
// and the interactive view.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Orange = lipgloss.Color("#FF7100")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Freshness class colors, indexed the same way as the class names.
var (
	CurrentColor  = Green
	OutdatedColor = Yellow
	UnknownColor  = Red
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)
