package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout stacks the menu bar, the screen body and the status bar.
func ComposeLayout(menuBar, body, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}

// RenderPanel wraps content with a styled border of the given outer size.
func RenderPanel(width, height int, content string, active bool) string {
	sty := StylePanelBorder
	if active {
		sty = StylePanelActive
	}
	return clampLines(sty.Width(width-2).Height(height-2).Render(content), height)
}

// RenderNotice draws a bordered explanation box, used for permission alerts.
func RenderNotice(title, body string, width int) string {
	w := width - 6
	if w < 20 {
		w = 20
	}
	content := StyleNoticeTitle.Render(title)
	if body != "" {
		content += "\n\n" + body
	}
	return StyleNotice.Width(w).Render(content)
}
