package ui

import (
	"fmt"
	"math"
	"strings"

	"contactex.klederson.com/internal/bluetooth"
	"github.com/charmbracelet/lipgloss"
)

// RenderDetailPanel renders the peripheral detail overlay that replaces the list.
func RenderDetailPanel(p bluetooth.Peripheral, width, height int) string {
	innerW := innerWidth(width)
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("DEVICE DETAIL")
	escHint := StyleHelp.Render("[ESC]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint

	sep := StyleRule.Render(strings.Repeat("-", innerW))

	lines := []string{titleLine, sep, ""}

	labelSty := lipgloss.NewStyle().Foreground(ColorMidGreen)
	valSty := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	fields := []struct{ label, value string }{
		{"Name", p.Name},
		{"ID", p.ID},
		{"RSSI", fmt.Sprintf("%d dBm (first seen)", p.RSSI)},
		{"Distance", fmt.Sprintf("~%.1fm", p.Distance())},
	}

	for _, f := range fields {
		label := labelSty.Render(fmt.Sprintf("  %-10s", f.label))
		lines = append(lines, label+valSty.Render(f.value))
	}

	lines = append(lines, "")

	barWidth := innerW - 22
	if barWidth < 10 {
		barWidth = 10
	}
	lines = append(lines, labelSty.Render("  Signal    ")+renderSignalBar(float64(p.RSSI), barWidth))

	return RenderPanel(width, height, strings.Join(lines, "\n"), true)
}

func renderSignalBar(rssi float64, width int) string {
	// Map RSSI -100..-30 to 0..width filled bars
	ratio := (rssi + 100.0) / 70.0
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * float64(width)))

	bar := strings.Repeat("|", filled) + strings.Repeat("-", width-filled)
	filledPart := lipgloss.NewStyle().Foreground(proximityColor(rssi)).Render(bar[:filled])
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(bar[filled:])
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func proximityColor(rssi float64) lipgloss.Color {
	switch {
	case rssi >= -55:
		return ColorAccent
	case rssi >= -75:
		return ColorWarning
	default:
		return ColorError
	}
}
