package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindmirror/mindmirror/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// AlignmentStyle returns the style for an alignment score: green from 70,
// yellow from 40, red below.
func AlignmentStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return StyleGreen
	case score >= 40:
		return StyleYellow
	default:
		return StyleRed
	}
}

// CrownBadge renders the crown indicator for the given achievement state,
// colored by crown tier, with the stack count appended from two crowns up.
func CrownBadge(a domain.Achievements) string {
	if a.CrownCount == 0 {
		return StyleDim.Render("no crowns yet")
	}
	var style lipgloss.Style
	switch a.CrownColor {
	case domain.CrownBlue:
		style = StyleBlue
	case domain.CrownGreen:
		style = StyleGreen
	default:
		style = StyleYellow
	}
	badge := style.Render("♛")
	if a.CrownCount > 1 {
		badge += StyleDim.Render(" " + a.StackLabel())
	}
	if a.IsPermanentBackground {
		badge += " " + StylePurple.Render("(permanent)")
	}
	return badge
}

// RunningPill returns a colored timer indicator.
func RunningPill(running bool) string {
	if running {
		return StyleYellowBold.Render("▶ Running")
	}
	return StyleDim.Render("○ Stopped")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
