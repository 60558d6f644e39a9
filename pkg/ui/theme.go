package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme bundles the pre-computed styles used by the voting screen.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style

	Score       lipgloss.Style // Candidate score column
	MutedText   lipgloss.Style // Counts, empty ranks, hints
	Preview     lipgloss.Style // Autocomplete remainder
	InvalidMark lipgloss.Style // Marker next to an invalid rank
	Invalid     lipgloss.Style // Invalid papers
	Disabled    lipgloss.Style // Undone papers
	Button      lipgloss.Style // Done button, unfocused
	ButtonFocus lipgloss.Style // Done button, focused
	ModeBadge   lipgloss.Style // Footer mode indicator
	StatusText  lipgloss.Style
	ErrorText   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Success:   ColorSuccess,
		Warning:   ColorWarning,
		Danger:    ColorDanger,
		Muted:     ColorMuted,
		Highlight: ColorBgHighlight,
	}

	t.Base = r.NewStyle().Foreground(ColorText)
	t.Title = r.NewStyle().Foreground(t.Primary).Bold(true)

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Score = r.NewStyle().Foreground(ThemeFg("#FF5555")).Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.Preview = r.NewStyle().Foreground(t.Success)
	t.InvalidMark = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.Invalid = r.NewStyle().Foreground(t.Danger)
	t.Disabled = r.NewStyle().Foreground(t.Muted).Strikethrough(true)
	t.Button = r.NewStyle().Foreground(t.Warning).Bold(true).Padding(0, SpaceXS)
	t.ButtonFocus = r.NewStyle().
		Background(t.Warning).
		Foreground(ColorOnAccent).
		Bold(true).
		Padding(0, SpaceXS)
	t.ModeBadge = r.NewStyle().
		Background(t.Primary).
		Foreground(ColorOnAccent).
		Bold(true).
		Padding(0, SpaceXS)
	t.StatusText = r.NewStyle().Foreground(ColorInfo)
	t.ErrorText = r.NewStyle().Foreground(t.Danger).Bold(true)

	return t
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
