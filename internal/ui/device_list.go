package ui

import (
	"fmt"
	"strings"

	"contactex.klederson.com/internal/bluetooth"
)

// RenderDeviceList renders the discovered peripherals with a cursor.
func RenderDeviceList(peripherals []bluetooth.Peripheral, width, height, cursor int) string {
	innerW := innerWidth(width)

	header := []string{
		StylePanelTitle.Render(fmt.Sprintf("DEVICES [%d]", len(peripherals))),
		StyleRule.Render(strings.Repeat("-", innerW)),
	}

	entries := make([][]string, len(peripherals))
	for i, p := range peripherals {
		entries[i] = renderPeripheralEntry(p, innerW, i == cursor)
	}

	empty := []string{
		"",
		StyleHelp.Render(" No devices..."),
		StyleHelp.Render(" Press [S] to start scanning"),
	}

	return renderList(header, entries, empty, width, height, cursor)
}

func renderPeripheralEntry(p bluetooth.Peripheral, maxW int, isCursor bool) []string {
	name := p.Name
	if nameMax := maxW - 16; len([]rune(name)) > nameMax && nameMax > 4 {
		name = string([]rune(name)[:nameMax])
	}

	rssiStr := fmt.Sprintf("%ddBm", p.RSSI)
	distStr := fmt.Sprintf("~%.1fm", p.Distance())

	if isCursor {
		return []string{
			StyleCursorRow.Render(truncRaw(fmt.Sprintf(">> %s  %s", name, rssiStr), maxW)),
			StyleCursorRow.Render(truncRaw("   "+p.ID, maxW)),
			"",
		}
	}

	return []string{
		"   " + StyleItemName.Render(name) + "  " + StyleItemValue.Render(rssiStr),
		"   " + StyleItemDetail.Render(truncRaw(p.ID, maxW-12)) + " " + StyleItemDetail.Render(distStr),
		"",
	}
}
