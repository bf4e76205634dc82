// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// ASYNC COMMANDS
// =============================================================================

// Commands run blocking calls against the state owners. The HTTP client
// bounds every request with its own timeout, so the background context is
// safe here.

func (m Model) sendCmd(content string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.SendMessage(context.Background(), content)
		return ChatCompletedMsg{}
	}
}

func (m Model) refreshDepartmentsCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.RefreshDepartments(context.Background())
		return DepartmentsRefreshedMsg{}
	}
}

func (m Model) loadArchiveCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return ArchiveLoadedMsg{Err: store.LoadArchived()}
	}
}

func (m Model) refreshIdentityCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		_ = session.RefreshIdentity(context.Background())
		return IdentityRefreshedMsg{}
	}
}

func (m Model) loginCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return LoginStartedMsg{Err: session.Login(context.Background())}
	}
}

func (m Model) refreshDocumentsCmd() tea.Cmd {
	registry := m.registry
	return func() tea.Msg {
		return DocumentsRefreshedMsg{Err: registry.Refresh(context.Background())}
	}
}

func (m Model) deleteDocumentCmd(id int64) tea.Cmd {
	registry := m.registry
	return func() tea.Msg {
		return DocumentDeletedMsg{Err: registry.Delete(context.Background(), id)}
	}
}

func (m Model) uploadDocumentCmd(path string) tea.Cmd {
	registry := m.registry
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return DocumentUploadedMsg{Err: err}
		}
		defer f.Close()
		return DocumentUploadedMsg{
			Err: registry.Upload(context.Background(), filepath.Base(path), f),
		}
	}
}
