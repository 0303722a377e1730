package tui

import (
	"github.com/charmbracelet/lipgloss"

	"focusdo/model"
)

// Palette is the concrete color scheme the UI renders with after the
// requested theme mode has been resolved.
type Palette struct {
	Name string

	Foreground lipgloss.Color
	Dim        lipgloss.Color

	Primary lipgloss.Color
	Accent  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// Dark is the default dark palette.
var Dark = Palette{
	Name: "dark",

	Foreground: lipgloss.Color("#c0caf5"),
	Dim:        lipgloss.Color("#565f89"),

	Primary: lipgloss.Color("#7aa2f7"),
	Accent:  lipgloss.Color("#bb9af7"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
}

// Light is the palette used on light terminal backgrounds.
var Light = Palette{
	Name: "light",

	Foreground: lipgloss.Color("#343b58"),
	Dim:        lipgloss.Color("#8990b3"),

	Primary: lipgloss.Color("#34548a"),
	Accent:  lipgloss.Color("#5a4a78"),

	Success: lipgloss.Color("#485e30"),
	Warning: lipgloss.Color("#8f5e15"),
	Error:   lipgloss.Color("#8c4351"),

	Border:      lipgloss.Color("#c1c6dd"),
	BorderFocus: lipgloss.Color("#34548a"),
	Selection:   lipgloss.Color("#d5d9ef"),
}

// ResolvePalette maps a theme mode to a concrete palette. System mode
// follows the terminal's detected background; callers re-resolve on
// every render so a background change takes effect while system stays
// selected.
func ResolvePalette(theme model.Theme) Palette {
	switch theme {
	case model.ThemeLight:
		return Light
	case model.ThemeDark:
		return Dark
	default:
		if lipgloss.HasDarkBackground() {
			return Dark
		}
		return Light
	}
}

func priorityColor(p Palette, priority model.Priority) lipgloss.Color {
	switch priority {
	case model.PriorityHigh:
		return p.Error
	case model.PriorityMedium:
		return p.Warning
	default:
		return p.Dim
	}
}
