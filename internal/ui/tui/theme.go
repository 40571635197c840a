// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorSurface  = lipgloss.Color("#45475a")
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext  = lipgloss.Color("#a6adc8")
	colorLavender = lipgloss.Color("#b4befe")
	colorSapphire = lipgloss.Color("#74c7ec")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorPeach    = lipgloss.Color("#fab387")
	colorRed      = lipgloss.Color("#f38ba8")

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Foreground(colorText).
			Padding(0, 1)

	paneActiveStyle = paneStyle.BorderForeground(colorLavender)

	titleStyle    = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorSubtext)
	hotStyle      = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	linkStyle     = lipgloss.NewStyle().Foreground(colorSapphire).Underline(true)
	buttonStyle   = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface).Padding(0, 1)
	disabledStyle = lipgloss.NewStyle().Foreground(colorSubtext).Background(colorSurface).Padding(0, 1)
	savedStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(colorSubtext).Width(7)
)
