// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/deskchat-tui/internal/auth"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/util"
)

// sidebarWidth is the fixed width of the department/conversation sidebar.
const sidebarWidth = 26

// =============================================================================
// VIEW
// =============================================================================

// View renders the full interface.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.renderHeader()

	var body string
	if m.showDocs {
		body = m.renderDocsPanel()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderSidebar(),
			m.viewport.View(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.renderInput(),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("deskchat")

	var who string
	switch m.authSnap.Status {
	case auth.StatusAuthenticated:
		if m.authSnap.User != nil {
			who = m.authSnap.User.Name
			if who == "" {
				who = m.authSnap.User.Email
			}
		}
	default:
		who = m.authSnap.Status.String()
	}

	left := title + "  " + m.theme.HeaderUser.Render(who)
	return m.theme.Header.Width(m.width).Render(left)
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(m.theme.SidebarHeading.Render("Departments"))
	b.WriteString("\n")
	for _, d := range m.chatSnap.Departments {
		style := m.theme.DeptItem
		marker := "  "
		if d.ID == m.chatSnap.Selected {
			style = m.theme.DeptItemSelected
			marker = "> "
		}
		b.WriteString(style.Render(marker + util.TruncateDisplay(d.Name, sidebarWidth-4)))
		b.WriteString("\n")
	}
	if m.chatSnap.DeptError != "" {
		b.WriteString(m.theme.WarningText.Render("  offline list"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.SidebarHeading.Render("Conversations"))
	b.WriteString("\n")
	if len(m.chatSnap.Conversations) == 0 {
		b.WriteString(m.theme.EmptyState.Render("  none yet"))
		b.WriteString("\n")
	}
	for _, c := range m.chatSnap.Conversations {
		style := m.theme.ConvItem
		marker := "  "
		if c.ID == m.chatSnap.ActiveID {
			style = m.theme.ConvItemActive
			marker = "* "
		}
		b.WriteString(style.Render(marker + util.TruncateDisplay(c.Title, sidebarWidth-4)))
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(sidebarWidth).
		Height(m.viewport.Height).
		Render(b.String())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshTranscript re-renders the message buffer into the viewport.
func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderMessages())
}

func (m Model) renderMessages() string {
	msgs := m.chatSnap.Buffer
	if len(msgs) == 0 {
		name := m.selectedDeptName()
		return m.theme.EmptyState.Render(
			fmt.Sprintf("\n  Ask the %s department anything.\n", name))
	}

	var b strings.Builder
	for _, msg := range msgs {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if m.chatSnap.Pending {
		b.WriteString(m.spin.View())
		b.WriteString(m.theme.EmptyState.Render(" waiting for reply..."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderMessage(msg model.Message) string {
	var b strings.Builder

	if msg.Sender == model.SenderUser {
		b.WriteString(m.theme.UserBubble.Render("You"))
		b.WriteString(m.renderTimestamp(msg))
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n")
		return b.String()
	}

	label := model.DepartmentName(msg.Department)
	if label == "" {
		label = "Department"
	}
	b.WriteString(m.theme.DeptLabel.Render(label))
	b.WriteString(m.renderTimestamp(msg))
	b.WriteString("\n")
	b.WriteString(m.renderReplyBody(msg.Content))
	b.WriteString("\n")
	return b.String()
}

// renderTimestamp returns the send time for the sender line, or "" when
// timestamps are off.
func (m Model) renderTimestamp(msg model.Message) string {
	if !m.timestamps {
		return ""
	}
	return "  " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
}

// renderReplyBody runs department replies through the markdown renderer
// when enabled, falling back to plain text on any rendering failure.
func (m Model) renderReplyBody(content string) string {
	if m.renderer == nil {
		return m.theme.DeptBubble.Render(content)
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return m.theme.DeptBubble.Render(content)
	}
	return strings.TrimRight(out, "\n")
}

func (m Model) selectedDeptName() string {
	for _, d := range m.chatSnap.Departments {
		if d.ID == m.chatSnap.Selected {
			return d.Name
		}
	}
	return model.DepartmentName(m.chatSnap.Selected)
}

// =============================================================================
// DOCUMENT PANEL
// =============================================================================

func (m Model) renderDocsPanel() string {
	var b strings.Builder
	b.WriteString(m.theme.DocPanelTitle.Render("Knowledge base"))
	b.WriteString("\n\n")

	if m.authSnap.Status != auth.StatusAuthenticated {
		b.WriteString(m.theme.EmptyState.Render("Sign in to manage your documents."))
	} else if len(m.documents) == 0 {
		b.WriteString(m.theme.EmptyState.Render("No documents uploaded yet."))
	} else {
		for i, d := range m.documents {
			style := m.theme.DocItem
			marker := "  "
			if i == m.docCursor {
				style = m.theme.DocItemSelected
				marker = "> "
			}
			line := fmt.Sprintf("%s%s", marker, d.Title)
			if d.UploadDate != nil {
				line += "  " + m.theme.Timestamp.Render(*d.UploadDate)
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.EmptyState.Render("Type a file path and press Enter to upload. Del removes the selected document."))

	if errText := m.registry.LastError(); errText != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusError.Render(errText))
	}

	return m.theme.DocPanel.
		Width(m.width - 4).
		Height(m.viewport.Height - 2).
		Render(b.String())
}

// =============================================================================
// INPUT AND STATUS
// =============================================================================

func (m Model) renderInput() string {
	return m.theme.InputContainer.Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	var parts []string

	parts = append(parts, m.theme.ShortcutDesc.Render(m.selectedDeptName()))

	if m.chatSnap.Pending {
		parts = append(parts, m.theme.StatusPending.Render("sending"))
	}
	if m.authSnap.Status == auth.StatusAuthFailed && m.authSnap.LastError != "" {
		parts = append(parts, m.theme.StatusError.Render(m.authSnap.LastError))
	}
	if m.statusMsg != "" {
		parts = append(parts, m.theme.ShortcutDesc.Render(m.statusMsg))
	}

	shortcuts := m.theme.ShortcutKey.Render("Tab") + m.theme.ShortcutDesc.Render(" dept ") +
		m.theme.ShortcutKey.Render("C-n") + m.theme.ShortcutDesc.Render(" new ") +
		m.theme.ShortcutKey.Render("C-o") + m.theme.ShortcutDesc.Render(" docs ") +
		m.theme.ShortcutKey.Render("C-g") + m.theme.ShortcutDesc.Render(" sign in")
	parts = append(parts, shortcuts)

	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  |  "))
}
