package ui

import "github.com/charmbracelet/lipgloss"

var (
	buttonBase = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Bold(true).
			Padding(0, 2).
			Align(lipgloss.Center)

	buttonNormal   = buttonBase.BorderForeground(ColorBorderNorm).Foreground(ColorGreen)
	buttonFocused  = buttonBase.BorderForeground(ColorBorderFocus).Foreground(ColorAccent)
	buttonDisabled = buttonBase.BorderForeground(ColorDisabled).Foreground(ColorDisabled).Bold(false)
)

// ButtonState selects how a button is drawn.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonFocused
	ButtonDisabled
)

// RenderButton draws a full-width bordered button with a centered label.
func RenderButton(label string, width int, state ButtonState) string {
	w := width - 2 // border
	if w < lipgloss.Width(label)+4 {
		w = lipgloss.Width(label) + 4
	}

	switch state {
	case ButtonFocused:
		return buttonFocused.Width(w).Render("> " + label + " <")
	case ButtonDisabled:
		return buttonDisabled.Width(w).Render(label)
	default:
		return buttonNormal.Width(w).Render(label)
	}
}
