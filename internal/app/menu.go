package app

import (
	"fmt"

	"contactex.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuSignIn = iota
	menuContacts
	menuDevices
	menuItemCount
)

var menuKeys = []ui.KeyHint{
	{Key: "↑↓", Label: " move"},
	{Key: "Enter", Label: " open"},
	{Key: "Q", Label: "uit"},
}

func (m AppModel) handleMenuKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "Q":
		m.Stop()
		return m, tea.Quit

	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}

	case "down", "j":
		if m.menuCursor < menuItemCount-1 {
			m.menuCursor++
		}

	case "enter", " ":
		switch m.menuCursor {
		case menuSignIn:
			return m.toggleSignIn()
		case menuContacts:
			return m.enterContacts()
		case menuDevices:
			return m.enterDevices()
		}
	}

	return m, nil
}

func (m AppModel) toggleSignIn() (tea.Model, tea.Cmd) {
	if m.signIn.pending {
		return m, nil
	}
	if m.shared.Session.SignedIn() {
		m.shared.Session.SignOut()
		m.signIn = signInState{}
		return m, nil
	}
	m.signIn = signInState{pending: true}
	return m, m.signInCmd()
}

func (m AppModel) signInLabel() string {
	if user, ok := m.shared.Session.User(); ok {
		return "Sign out " + user.DisplayName()
	}
	return "Sign in with Google"
}

func (m AppModel) viewMenu(height int) string {
	items := []ui.MenuItem{
		{Label: m.signInLabel(), Disabled: m.signIn.pending},
		{Label: "Contacts"},
		{Label: "Around devices"},
	}

	footer := ""
	switch {
	case m.signIn.pending && m.signIn.code != "":
		footer = ui.StyleItemValue.Render(fmt.Sprintf("Visit %s and enter code %s", m.signIn.uri, m.signIn.code))
	case m.signIn.pending:
		footer = ui.StyleHelp.Render("Contacting identity provider...")
	case m.signIn.err != nil:
		footer = ui.StyleError.Render(m.signIn.err.Error())
	}

	return ui.RenderPanel(m.width, height, ui.RenderMenu(items, m.menuCursor, m.width-4, footer), false)
}

func (m AppModel) menuStatus() string {
	if user, ok := m.shared.Session.User(); ok {
		return "Signed in as " + user.DisplayName()
	}
	return "Not signed in"
}
