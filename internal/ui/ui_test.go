package ui

import (
	"strings"
	"testing"

	"contactex.klederson.com/internal/bluetooth"
	"contactex.klederson.com/internal/contacts"
	"github.com/stretchr/testify/assert"
)

func TestRenderDeviceListHeight(t *testing.T) {
	ps := make([]bluetooth.Peripheral, 0, 30)
	for i := 0; i < 30; i++ {
		ps = append(ps, bluetooth.Peripheral{ID: strings.Repeat("A", 8), Name: "Phone", RSSI: -50})
	}

	for _, h := range []int{5, 12, 40} {
		out := RenderDeviceList(ps, 60, h, 25)
		assert.Len(t, strings.Split(out, "\n"), h)
	}
}

func TestRenderDeviceListContent(t *testing.T) {
	ps := []bluetooth.Peripheral{
		{ID: "AA:BB", Name: "Phone", RSSI: -40},
		{ID: "CC:DD", Name: "Watch", RSSI: -70},
	}

	out := RenderDeviceList(ps, 60, 20, 0)
	assert.Contains(t, out, "DEVICES [2]")
	assert.Contains(t, out, "Phone")
	assert.Contains(t, out, "-40dBm")
	assert.Contains(t, out, "Watch")

	empty := RenderDeviceList(nil, 60, 20, 0)
	assert.Contains(t, empty, "No devices")
}

func TestRenderDeviceListKeepsCursorVisible(t *testing.T) {
	var ps []bluetooth.Peripheral
	for _, n := range []string{"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "last"} {
		ps = append(ps, bluetooth.Peripheral{ID: n, Name: n, RSSI: -60})
	}

	out := RenderDeviceList(ps, 60, 12, len(ps)-1)
	assert.Contains(t, out, "last")
	assert.NotContains(t, out, "a0")
}

func TestRenderContactList(t *testing.T) {
	list := []contacts.Contact{
		contacts.New("Ada", "Lovelace", "ada@example.com"),
		contacts.New("Alan", "Turing", ""),
	}

	out := RenderContactList(list, contacts.Phone, contacts.ByFirstName, 70, 20, 1)
	assert.Contains(t, out, "YOUR CONTACTS [2]")
	assert.Contains(t, out, "sorted by first name")
	assert.Contains(t, out, "Phone contacts")
	assert.Contains(t, out, "Sample contacts")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, ">> Alan Turing")
	assert.Len(t, strings.Split(out, "\n"), 20)
}

func TestRenderButtonStates(t *testing.T) {
	assert.Contains(t, RenderButton("Start scanning", 40, ButtonFocused), "> Start scanning <")
	assert.Contains(t, RenderButton("Start scanning", 40, ButtonDisabled), "Start scanning")
	assert.NotContains(t, RenderButton("Start scanning", 40, ButtonNormal), ">")
}

func TestRenderMenu(t *testing.T) {
	out := RenderMenu([]MenuItem{{Label: "Sign in"}, {Label: "Contacts"}}, 1, 80, "footer text")
	assert.Contains(t, out, "Sign in")
	assert.Contains(t, out, "> Contacts <")
	assert.Contains(t, out, "footer text")
}

func TestRenderBars(t *testing.T) {
	bar := RenderMenuBar(80, "Menu", []KeyHint{{"Q", "uit"}}, "status")
	assert.Contains(t, bar, "CONTACT-EX")
	assert.Contains(t, bar, "[Q]")
	assert.Contains(t, bar, "status")

	assert.Contains(t, RenderStatusBar(80, "left", "right"), "left")
	assert.Contains(t, RenderPowerStatus(true), "on")
	assert.Contains(t, RenderPowerStatus(false), "off")
	assert.Contains(t, RenderScanStatus(true), "SCANNING")
	assert.Contains(t, RenderScanStatus(false), "IDLE")
}

func TestRenderDetailPanel(t *testing.T) {
	out := RenderDetailPanel(bluetooth.Peripheral{ID: "AA:BB", Name: "Tag", RSSI: -59}, 60, 16)
	assert.Contains(t, out, "DEVICE DETAIL")
	assert.Contains(t, out, "AA:BB")
	assert.Contains(t, out, "~1.0m")
	assert.Len(t, strings.Split(out, "\n"), 16)
}

func TestRenderSignalBarBounds(t *testing.T) {
	assert.Contains(t, renderSignalBar(-20, 10), strings.Repeat("|", 10))
	assert.Contains(t, renderSignalBar(-120, 10), strings.Repeat("-", 10))
}

func TestRenderNotice(t *testing.T) {
	out := RenderNotice("Bluetooth access refused", "Allow access in system settings", 60)
	assert.Contains(t, out, "Bluetooth access refused")
	assert.Contains(t, out, "Allow access")
}

func TestTruncRaw(t *testing.T) {
	assert.Equal(t, "abc  ", truncRaw("abc", 5))
	assert.Equal(t, "ab", truncRaw("abc", 2))
	assert.Equal(t, "", truncRaw("abc", 0))
}
