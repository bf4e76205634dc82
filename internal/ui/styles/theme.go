// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderUser  lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarHeading   lipgloss.Style
	DeptItem         lipgloss.Style
	DeptItemSelected lipgloss.Style
	ConvItem         lipgloss.Style
	ConvItemActive   lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	DeptBubble   lipgloss.Style
	DeptLabel    lipgloss.Style
	Timestamp    lipgloss.Style
	EmptyState   lipgloss.Style
	WarningText  lipgloss.Style

	// ==========================================================================
	// INPUT AND STATUS STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	StatusBar      lipgloss.Style
	StatusError    lipgloss.Style
	StatusPending  lipgloss.Style
	ShortcutKey    lipgloss.Style
	ShortcutDesc   lipgloss.Style
	Spinner        lipgloss.Style

	// ==========================================================================
	// DOCUMENT PANEL STYLES
	// ==========================================================================

	DocPanel        lipgloss.Style
	DocPanelTitle   lipgloss.Style
	DocItem         lipgloss.Style
	DocItemSelected lipgloss.Style
}

// color pairs: dark theme value first, light second.
func adaptive(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

// New creates a theme for the given mode ("dark" or "light").
func New(mode string) *Theme {
	t := &Theme{
		IsDark:       mode != "light",
		ColorProfile: termenv.ColorProfile(),
	}

	accent := adaptive("39", "27")     // blue
	muted := adaptive("243", "245")    // gray
	warn := adaptive("214", "166")     // amber
	errc := adaptive("203", "160")     // red
	surface := adaptive("236", "254")  // panel background

	t.Header = lipgloss.NewStyle().
		Background(surface).
		Padding(0, 1).
		Bold(true)
	t.HeaderTitle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.HeaderUser = lipgloss.NewStyle().Foreground(muted)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(muted).
		Padding(0, 1)
	t.SidebarHeading = lipgloss.NewStyle().Foreground(muted).Bold(true)
	t.DeptItem = lipgloss.NewStyle().Foreground(muted)
	t.DeptItemSelected = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.ConvItem = lipgloss.NewStyle().Foreground(muted)
	t.ConvItemActive = lipgloss.NewStyle().Foreground(accent)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(adaptive("255", "235")).
		Bold(true)
	t.DeptBubble = lipgloss.NewStyle().Foreground(adaptive("252", "238"))
	t.DeptLabel = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.Timestamp = lipgloss.NewStyle().Foreground(muted)
	t.EmptyState = lipgloss.NewStyle().Foreground(muted).Italic(true)
	t.WarningText = lipgloss.NewStyle().Foreground(warn)

	t.InputContainer = lipgloss.NewStyle().Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().
		Background(surface).
		Foreground(muted).
		Padding(0, 1)
	t.StatusError = lipgloss.NewStyle().Foreground(errc)
	t.StatusPending = lipgloss.NewStyle().Foreground(warn)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(accent)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(muted)
	t.Spinner = lipgloss.NewStyle().Foreground(accent)

	t.DocPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)
	t.DocPanelTitle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.DocItem = lipgloss.NewStyle().Foreground(muted)
	t.DocItemSelected = lipgloss.NewStyle().Foreground(accent).Bold(true)

	return t
}

// SetSize records the terminal dimensions for layout calculations.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
