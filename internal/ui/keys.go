// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the deskchat interface.
type KeyMap struct {
	Submit     key.Binding
	NewChat    key.Binding
	NextDept   key.Binding
	PrevDept   key.Binding
	NextConv   key.Binding
	PrevConv   key.Binding
	Docs       key.Binding
	Login      key.Binding
	Logout     key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	DeleteDoc  key.Binding
	CloseDocs  key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		NextDept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next department"),
		),
		PrevDept: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous department"),
		),
		NextConv: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("C-Down", "next conversation"),
		),
		PrevConv: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("C-Up", "previous conversation"),
		),
		Docs: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "documents"),
		),
		Login: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "sign in with Google"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "sign out"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("Up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("Down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		DeleteDoc: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("Del", "delete document"),
		),
		CloseDocs: key.NewBinding(
			key.WithKeys("esc", "ctrl+o"),
			key.WithHelp("Esc", "close documents"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
