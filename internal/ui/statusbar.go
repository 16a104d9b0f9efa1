package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with left and right aligned parts.
func RenderStatusBar(width int, left, right string) string {
	content := StyleStatusBar.Foreground(ColorGreen).Render(left)

	gap := width - lipgloss.Width(content) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap) + right)
}

// RenderPowerStatus shows whether the Bluetooth radio is on.
func RenderPowerStatus(poweredOn bool) string {
	if poweredOn {
		return StyleStatusOn.Render("Bluetooth is switched on")
	}
	return StyleStatusOff.Render("Bluetooth is switched off")
}

// RenderScanStatus shows the scan state.
func RenderScanStatus(scanning bool) string {
	if scanning {
		return StyleStatusOn.Render("[SCANNING]")
	}
	return StyleStatusIdle.Render("[IDLE]")
}
