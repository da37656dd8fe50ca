// Package ui holds the terminal styles used by the tasks CLI.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorDanger  = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
)

// Text styles
var (
	Bold    = lipgloss.NewStyle().Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(ColorMuted)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
	Danger  = lipgloss.NewStyle().Foreground(ColorDanger)
)

// ID style - distinctive for task IDs
var ID = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// Header style for table headers
var Header = lipgloss.NewStyle().Foreground(ColorMuted)

// Status text styles (for table use, no background/padding)
var (
	StatusOpenText = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StatusDoneText = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// StatusLabel returns the plain status word for a completed flag.
func StatusLabel(completed bool) string {
	if completed {
		return "done"
	}
	return "open"
}

// RenderStatusText returns styled status text for a completed flag.
func RenderStatusText(completed bool) string {
	if completed {
		return StatusDoneText.Render(StatusLabel(true))
	}
	return StatusOpenText.Render(StatusLabel(false))
}

// RenderTitle renders a title, muted and struck through once completed.
func RenderTitle(title string, completed bool) string {
	if completed {
		return Muted.Strikethrough(true).Render(title)
	}
	return title
}

// Truncate shortens s to at most max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
