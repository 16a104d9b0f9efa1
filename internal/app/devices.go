package app

import (
	"fmt"
	"strings"

	"contactex.klederson.com/internal/permission"
	"contactex.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// enterDevices opens the scanner screen and checks authorization once on entry.
func (m AppModel) enterDevices() (tea.Model, tea.Cmd) {
	m.screen = screenDevices
	m.showDetail = false
	if m.shared.Scanner.AuthorizationDenied() {
		m.alert = "Bluetooth access refused"
	}
	return m, nil
}

// canStart gates the start control on power and authorization.
func (m AppModel) canStart() bool {
	return m.poweredOn && !m.shared.Scanner.AuthorizationDenied()
}

func (m AppModel) devicesKeys() []ui.KeyHint {
	keys := []ui.KeyHint{
		{Key: "S", Label: "tart/stop"},
		{Key: "Enter", Label: " detail"},
		{Key: "Esc", Label: " back"},
	}
	if m.shared.Demo != nil {
		keys = append(keys, ui.KeyHint{Key: "B", Label: "luetooth"}, ui.KeyHint{Key: "A", Label: "ccess"})
	}
	return keys
}

func (m AppModel) handleDevicesKey(key string) (tea.Model, tea.Cmd) {
	if m.showDetail {
		switch key {
		case "esc", "enter", "backspace", "q", "Q":
			m.showDetail = false
		}
		return m, nil
	}

	switch key {
	case "esc", "backspace", "q", "Q":
		m.screen = screenMenu

	case "s", "S", " ":
		if m.scanning {
			m.shared.Scanner.StopScanning()
		} else if m.canStart() {
			m.shared.Scanner.StartScanning()
			m.deviceCursor = 0
		}
		// Reflect the command right away; the relayed message confirms it.
		m.scanning = m.shared.Scanner.Scanning().Get()
		m.peripherals = m.shared.Scanner.Discovered().Get()

	case "enter":
		if len(m.peripherals) > 0 {
			m.showDetail = true
		}

	case "up", "k":
		if m.deviceCursor > 0 {
			m.deviceCursor--
		}

	case "down", "j":
		if m.deviceCursor < len(m.peripherals)-1 {
			m.deviceCursor++
		}

	case "home":
		m.deviceCursor = 0

	case "end":
		if len(m.peripherals) > 0 {
			m.deviceCursor = len(m.peripherals) - 1
		}

	case "b", "B":
		if demo := m.shared.Demo; demo != nil {
			demo.SetPower(!demo.Powered())
		}

	case "a", "A":
		if demo := m.shared.Demo; demo != nil {
			next := permission.Denied
			if demo.AuthorizationStatus().IsDenied() {
				next = permission.Authorized
			}
			demo.SetAuthorization(next)
		}
	}

	return m, nil
}

func (m AppModel) viewDevices(height int) string {
	buttonH := 3
	listH := height - buttonH
	if listH < 5 {
		listH = 5
	}

	var body string
	switch {
	case m.shared.Scanner.AuthorizationDenied():
		body = ui.RenderPanel(m.width, listH, ui.RenderNotice(
			"This app is not allowed to use Bluetooth",
			"Run with sudo, or grant the capability once:\n  sudo setcap cap_net_admin+ep ./contactex",
			m.width-4,
		), false)
	case m.showDetail && m.deviceCursor < len(m.peripherals):
		body = ui.RenderDetailPanel(m.peripherals[m.deviceCursor], m.width, listH)
	default:
		body = ui.RenderDeviceList(m.peripherals, m.width, listH, m.deviceCursor)
	}

	var button string
	switch {
	case m.scanning:
		button = ui.RenderButton("Stop scanning Bluetooth devices", m.width, ui.ButtonFocused)
	case m.canStart():
		button = ui.RenderButton("Start scanning Bluetooth devices", m.width, ui.ButtonFocused)
	default:
		button = ui.RenderButton("Start scanning Bluetooth devices", m.width, ui.ButtonDisabled)
	}

	return strings.Join([]string{body, button}, "\n")
}

func (m AppModel) devicesStatus() string {
	status := fmt.Sprintf("Devices: %d", len(m.peripherals))
	if m.radioErr != nil {
		status += "  " + ui.StyleError.Render("Radio: "+m.radioErr.Error())
	}
	if m.shared.Adapter != "" {
		status += "  Adapter: " + m.shared.Adapter
	}
	return status
}
