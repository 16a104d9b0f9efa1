package ui

import (
	"fmt"
	"strings"

	"contactex.klederson.com/internal/contacts"
)

// RenderContactList renders a contact list with the source tabs and sort
// order in its fixed header.
func RenderContactList(list []contacts.Contact, source contacts.Source, order contacts.SortField, width, height, cursor int) string {
	innerW := innerWidth(width)

	header := []string{
		StylePanelTitle.Render(fmt.Sprintf("YOUR CONTACTS [%d]", len(list))) + StyleHelp.Render("sorted by "+order.String()),
		RenderSourceTabs(source),
		StyleRule.Render(strings.Repeat("-", innerW)),
	}

	entries := make([][]string, len(list))
	for i, c := range list {
		entries[i] = renderContactEntry(c, innerW, i == cursor)
	}

	empty := []string{"", StyleHelp.Render(" No contacts")}
	return renderList(header, entries, empty, width, height, cursor)
}

// RenderSourceTabs is the segmented control that switches contact source.
func RenderSourceTabs(active contacts.Source) string {
	tabs := make([]string, 0, len(contacts.Sources))
	for _, s := range contacts.Sources {
		if s == active {
			tabs = append(tabs, StyleTabActive.Render(s.String()))
		} else {
			tabs = append(tabs, StyleTabInactive.Render(s.String()))
		}
	}
	return " " + strings.Join(tabs, " ")
}

func renderContactEntry(c contacts.Contact, maxW int, isCursor bool) []string {
	name := c.FullName()
	if isCursor {
		return []string{
			StyleCursorRow.Render(truncRaw(">> "+name, maxW)),
			StyleCursorRow.Render(truncRaw("   "+c.Email, maxW)),
			"",
		}
	}
	return []string{
		"   " + StyleItemName.Render(name),
		"   " + StyleItemDetail.Render(c.Email),
		"",
	}
}
