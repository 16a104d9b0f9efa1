package ui

import "strings"

// MenuItem is one button of the main menu.
type MenuItem struct {
	Label    string
	Disabled bool
}

// RenderMenu draws the main menu as a column of buttons with the cursor one
// focused, followed by an optional footer line.
func RenderMenu(items []MenuItem, cursor, width int, footer string) string {
	w := width / 2
	if w < 30 {
		w = 30
	}
	if w > width {
		w = width
	}

	var rows []string
	for i, it := range items {
		state := ButtonNormal
		switch {
		case it.Disabled:
			state = ButtonDisabled
		case i == cursor:
			state = ButtonFocused
		}
		rows = append(rows, RenderButton(it.Label, w, state))
	}
	if footer != "" {
		rows = append(rows, "", footer)
	}
	return strings.Join(rows, "\n")
}
