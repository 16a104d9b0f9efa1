package app

import (
	"context"

	"contactex.klederson.com/internal/auth"
	"contactex.klederson.com/internal/bluetooth"
	"contactex.klederson.com/internal/config"
	"contactex.klederson.com/internal/contacts"
	"contactex.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

type screen int

const (
	screenMenu screen = iota
	screenContacts
	screenDevices
)

// Deps are the long-lived objects the screens work with. main creates them
// and owns their lifecycle.
type Deps struct {
	Scanner *bluetooth.Scanner
	Book    *contacts.Book
	Session *auth.Session
	Enable  func() error         // powers up the radio; may be nil
	Demo    *bluetooth.MockRadio // set in demo mode only
	Adapter string
	Log     logrus.FieldLogger
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	Deps
	relay       *relay
	unsubscribe func()
}

type signInState struct {
	pending bool
	code    string
	uri     string
	err     error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	width  int
	height int

	screen     screen
	menuCursor int
	alert      string // one-shot permission alert, dismissed by any key
	radioErr   error

	// Around devices
	poweredOn    bool
	scanning     bool
	peripherals  []bluetooth.Peripheral
	deviceCursor int
	showDetail   bool

	// Contacts
	source        contacts.Source
	phone         []contacts.Contact
	sample        []contacts.Contact
	order         contacts.SortField
	contactCursor int

	signIn signInState

	shared *shared
}

// New creates the root model.
func New(d Deps) AppModel {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	return AppModel{
		source: contacts.Sample,
		shared: &shared{
			Deps:  d,
			relay: newRelay(),
		},
	}
}

// Start bridges the observables into program messages and powers up the
// radio. Must be called before p.Run().
func (m *AppModel) Start(p *tea.Program) {
	sh := m.shared
	sh.unsubscribe = subscribe(sh.relay, sh.Scanner, sh.Book)
	go sh.relay.run(p.Send)

	if sh.Enable != nil {
		go func() {
			if err := sh.Enable(); err != nil {
				sh.Log.WithError(err).Error("radio unavailable")
				sh.relay.push(ScanErrorMsg{Err: err})
			}
		}()
	}
}

// Stop halts scanning and detaches from the observables.
func (m *AppModel) Stop() {
	sh := m.shared
	if sh.Scanner.Scanning().Get() {
		sh.Scanner.StopScanning()
	}
	if sh.unsubscribe != nil {
		sh.unsubscribe()
	}
	sh.relay.close()
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case PoweredOnMsg:
		m.poweredOn = bool(msg)
		return m, nil

	case ScanningMsg:
		m.scanning = bool(msg)
		return m, nil

	case PeripheralsMsg:
		m.peripherals = msg
		if m.deviceCursor >= len(m.peripherals) {
			m.deviceCursor = max(0, len(m.peripherals)-1)
		}
		return m, nil

	case ContactsMsg:
		if msg.Source == contacts.Phone {
			m.phone = msg.List
		} else {
			m.sample = msg.List
		}
		return m, nil

	case SortOrderMsg:
		m.order = contacts.SortField(msg)
		return m, nil

	case SignInPromptMsg:
		m.signIn.code = msg.Code
		m.signIn.uri = msg.URI
		return m, nil

	case SignInResultMsg:
		m.signIn = signInState{err: msg.Err}
		if msg.Err != nil {
			m.shared.Log.WithError(msg.Err).Warn("error sign in")
			return m, nil
		}
		return m.enterContacts()

	case ScanErrorMsg:
		m.radioErr = msg.Err
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.Stop()
		return m, tea.Quit
	}
	if m.alert != "" {
		m.alert = ""
		return m, nil
	}

	switch m.screen {
	case screenContacts:
		return m.handleContactsKey(key)
	case screenDevices:
		return m.handleDevicesKey(key)
	default:
		return m.handleMenuKey(key)
	}
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	bodyH := m.height - 2
	if bodyH < 8 {
		bodyH = 8
	}

	var title, body, status string
	var keys []ui.KeyHint
	switch m.screen {
	case screenContacts:
		title, keys = "Contacts", contactsKeys
		body = m.viewContacts(bodyH)
		status = m.contactsStatus()
	case screenDevices:
		title, keys = "Around devices", m.devicesKeys()
		body = m.viewDevices(bodyH)
		status = m.devicesStatus()
	default:
		title, keys = "Menu", menuKeys
		body = m.viewMenu(bodyH)
		status = m.menuStatus()
	}

	if m.alert != "" {
		body = ui.RenderNotice(m.alert, "Press any key to continue", m.width)
	}

	menuBar := ui.RenderMenuBar(m.width, title, keys, ui.RenderScanStatus(m.scanning))
	statusBar := ui.RenderStatusBar(m.width, status, ui.RenderPowerStatus(m.poweredOn))
	return ui.ComposeLayout(menuBar, body, statusBar)
}

func (m AppModel) signInCmd() tea.Cmd {
	sh := m.shared
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.SignInTimeout)
		defer cancel()
		user, err := sh.Session.SignIn(ctx, func(code, uri string) {
			sh.relay.push(SignInPromptMsg{Code: code, URI: uri})
		})
		return SignInResultMsg{User: user, Err: err}
	}
}
