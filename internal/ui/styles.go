package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorAccent      = lipgloss.Color("#00FF41")
	ColorGreen       = lipgloss.Color("#00CC33")
	ColorMidGreen    = lipgloss.Color("#008F11")
	ColorDimGreen    = lipgloss.Color("#004A0A")
	ColorBarBg       = lipgloss.Color("#002200")
	ColorBorderNorm  = lipgloss.Color("#00AA22")
	ColorBorderFocus = lipgloss.Color("#00FF41")
	ColorError       = lipgloss.Color("#FF3300")
	ColorWarning     = lipgloss.Color("#FFAA00")
	ColorText        = lipgloss.Color("#E0E0E0")
	ColorDisabled    = lipgloss.Color("#555555")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorBarBg).
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorBarBg).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusOn = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleStatusOff = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleStatusIdle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StyleItemName = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleItemDetail = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleItemValue = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleRule = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleNotice = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorWarning).
			Foreground(ColorText).
			Padding(0, 2).
			Align(lipgloss.Center)

	StyleNoticeTitle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Cursor row style: black text on bright green
	StyleCursorRow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(ColorAccent).
			Bold(true)

	StyleTabActive = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StyleTabInactive = lipgloss.NewStyle().
				Foreground(ColorMidGreen).
				Padding(0, 1)
)
