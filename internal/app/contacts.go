package app

import (
	"fmt"

	"contactex.klederson.com/internal/contacts"
	"contactex.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

var contactsKeys = []ui.KeyHint{
	{Key: "Tab", Label: " source"},
	{Key: "F", Label: "irst name"},
	{Key: "L", Label: "ast name"},
	{Key: "Esc", Label: " back"},
}

// enterContacts opens the contacts screen, loads the address book and raises
// the permission alert once if access was refused.
func (m AppModel) enterContacts() (tea.Model, tea.Cmd) {
	m.screen = screenContacts
	m.contactCursor = 0

	book := m.shared.Book
	if book.AccessDenied() {
		m.alert = "Contacts access refused"
	}
	return m, func() tea.Msg {
		book.FetchPhone()
		return nil
	}
}

func (m AppModel) currentContacts() []contacts.Contact {
	if m.source == contacts.Phone {
		return m.phone
	}
	return m.sample
}

func (m AppModel) handleContactsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "backspace", "q", "Q":
		m.screen = screenMenu

	case "tab", "shift+tab", "left", "right":
		m.source = m.source.Next()
		m.contactCursor = 0

	case "f", "F":
		m.shared.Book.SortBy(contacts.ByFirstName)

	case "l", "L":
		m.shared.Book.SortBy(contacts.ByLastName)

	case "up", "k":
		if m.contactCursor > 0 {
			m.contactCursor--
		}

	case "down", "j":
		if m.contactCursor < len(m.currentContacts())-1 {
			m.contactCursor++
		}

	case "home":
		m.contactCursor = 0

	case "end":
		if n := len(m.currentContacts()); n > 0 {
			m.contactCursor = n - 1
		}
	}

	return m, nil
}

func (m AppModel) viewContacts(height int) string {
	if m.source == contacts.Phone && m.shared.Book.AccessDenied() {
		notice := ui.RenderNotice(
			"This app is not allowed to read your contacts",
			"Grant read access to the address book directory in your system settings,\nthen come back to this screen.",
			m.width-4,
		)
		content := notice + "\n\n" + ui.RenderSourceTabs(m.source)
		return ui.RenderPanel(m.width, height, content, false)
	}
	return ui.RenderContactList(m.currentContacts(), m.source, m.order, m.width, height, m.contactCursor)
}

func (m AppModel) contactsStatus() string {
	return fmt.Sprintf("Phone: %d  Sample: %d", len(m.phone), len(m.sample))
}
