// Package styles provides the colour theme for command output.
package styles

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for command output.
type Theme struct {
	// Primary colours headings and the start of the progress gradient.
	Primary lipgloss.Color

	// Secondary is the end of the progress gradient.
	Secondary lipgloss.Color

	// Muted is for field labels.
	Muted lipgloss.Color

	// Success marks completed work.
	Success lipgloss.Color

	// Warning marks dropped batches and non-unit vectors.
	Warning lipgloss.Color

	// Error marks fatal failures.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for summary headings.
	Title lipgloss.Style

	// Label style for field names.
	Label lipgloss.Style

	// Success style for completed counts.
	Success lipgloss.Style

	// Warning style for partial failures.
	Warning lipgloss.Style

	// Error style for fatal failures.
	Error lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// ProgressBar returns a bar of the given width drawn in the theme's gradient.
func (s *Styles) ProgressBar(width int) progress.Model {
	return progress.New(
		progress.WithGradient(string(s.theme.Primary), string(s.theme.Secondary)),
		progress.WithWidth(width),
	)
}
