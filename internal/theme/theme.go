// Package theme provides the color palettes for the watch UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used in the application UI.
type Theme struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // Foreground color for text on Accent background
	Border     lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Cyan       lipgloss.Color
	Yellow     lipgloss.Color
}

// Theme names.
const (
	DarkName  = "dark"
	LightName = "light"
)

// Dark returns the dark theme (charcoal background, blue accents).
func Dark() *Theme {
	return &Theme{
		Background: lipgloss.Color("#0D1117"), // Charcoal background
		Accent:     lipgloss.Color("#41ADFF"), // Blue accent
		AccentFg:   lipgloss.Color("#0D1117"), // Dark text on accent
		Border:     lipgloss.Color("#30363D"), // Subtle borders
		MutedFg:    lipgloss.Color("#8B949E"), // Muted text
		TextFg:     lipgloss.Color("#E6EDF3"), // Primary text
		SuccessFg:  lipgloss.Color("#3FB950"), // Success green
		WarnFg:     lipgloss.Color("#E3B341"), // Warning amber
		ErrorFg:    lipgloss.Color("#F47067"), // Soft red
		Cyan:       lipgloss.Color("#7CE0F3"), // Cyan highlights
		Yellow:     lipgloss.Color("#F2CC60"), // Highlight yellow
	}
}

// Light returns the theme for light terminal backgrounds.
func Light() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FFFFFF"), // Pure white
		Accent:     lipgloss.Color("#0969DA"), // Blue accent
		AccentFg:   lipgloss.Color("#FFFFFF"), // White text on accent
		Border:     lipgloss.Color("#D0D7DE"), // Subtle cool gray
		MutedFg:    lipgloss.Color("#6E7781"), // Muted gray text
		TextFg:     lipgloss.Color("#24292F"), // Deep charcoal
		SuccessFg:  lipgloss.Color("#1A7F37"), // Success green
		WarnFg:     lipgloss.Color("#9A6700"), // Warning brown/orange
		ErrorFg:    lipgloss.Color("#CF222E"), // Error red
		Cyan:       lipgloss.Color("#0598BC"), // Cyan
		Yellow:     lipgloss.Color("#D4A72C"), // Yellow
	}
}

// GetTheme returns a theme by name, or the dark theme if not found.
func GetTheme(name string) *Theme {
	if name == LightName {
		return Light()
	}
	return Dark()
}

// IsLight returns true if the theme is a light theme.
func IsLight(name string) bool {
	return name == LightName
}

// DefaultDark returns the default dark theme name.
func DefaultDark() string {
	return DarkName
}

// DefaultLight returns the default light theme name.
func DefaultLight() string {
	return LightName
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{DarkName, LightName}
}
