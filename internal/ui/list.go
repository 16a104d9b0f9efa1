package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderList renders a bordered, scrollable list panel. header lines stay
// fixed at the top; entries scroll so the cursor entry is always visible.
// Every entry must have the same number of lines.
func renderList(header []string, entries [][]string, empty []string, width, height, cursor int) string {
	// Total inner height (excluding border top+bottom)
	innerH := height - 2
	if innerH < len(header)+1 {
		innerH = len(header) + 1
	}

	// Space available for entries
	space := innerH - len(header)
	if space < 1 {
		space = 1
	}

	var lines []string
	if len(entries) == 0 {
		lines = append(lines, empty...)
	} else {
		perEntry := len(entries[0])
		maxVisible := space / perEntry
		if maxVisible < 1 {
			maxVisible = 1
		}

		// Compute viewport start so cursor is always visible
		viewStart := 0
		if cursor >= maxVisible {
			viewStart = cursor - maxVisible + 1
		}

		for i := viewStart; i < len(entries) && len(lines) < space; i++ {
			for _, l := range entries[i] {
				if len(lines) >= space {
					break
				}
				lines = append(lines, l)
			}
		}
	}

	if len(lines) > space {
		lines = lines[:space]
	}
	for len(lines) < space {
		lines = append(lines, "")
	}

	all := make([]string, 0, innerH)
	all = append(all, header...)
	all = append(all, lines...)

	content := strings.Join(all, "\n")
	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(content)
	return clampLines(rendered, height)
}

// clampLines pads or truncates s to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampLines(s string, height int) string {
	out := strings.Split(s, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// truncRaw pads or truncates a raw string to exactly w cells.
func truncRaw(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func innerWidth(width int) int {
	w := width - 4
	if w < 10 {
		w = 10
	}
	return w
}
