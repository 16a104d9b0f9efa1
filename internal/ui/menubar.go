package ui

import (
	"fmt"
	"strings"

	"contactex.klederson.com/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// KeyHint is one entry of the menu bar, rendered as "[K]label".
type KeyHint struct {
	Key   string
	Label string
}

// RenderMenuBar renders the top menu bar: app title and screen name on the
// left, key hints, and an optional status on the right.
func RenderMenuBar(width int, screen string, keys []KeyHint, status string) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.Key+"]") + StyleMenuLabel.Render(k.Label)
	}

	left := StyleMenuKey.Render(title) + StyleMenuLabel.Render(screen) + menu
	right := status + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2 // bar padding
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
