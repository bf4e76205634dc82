// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/deskchat-tui/internal/auth"
	"github.com/jeranaias/deskchat-tui/internal/chat"
	"github.com/jeranaias/deskchat-tui/internal/docs"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	// State owners
	store    *chat.Store
	session  *auth.Session
	registry *docs.Registry

	// Styling
	theme      *styles.Theme
	markdown   bool
	timestamps bool
	renderer   *glamour.TermRenderer

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	keys     KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// Snapshots read after each completed command
	chatSnap  chat.Snapshot
	authSnap  auth.Snapshot
	documents []model.Document

	// Document panel
	showDocs  bool
	docCursor int

	// Transient status line
	statusMsg string
}

// New creates the root model over the given state owners.
func New(store *chat.Store, session *auth.Session, registry *docs.Registry, theme *styles.Theme, markdown, timestamps bool) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask your department..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	m := Model{
		store:      store,
		session:    session,
		registry:   registry,
		theme:      theme,
		markdown:   markdown,
		timestamps: timestamps,
		viewport:   vp,
		input:      ti,
		spin:       sp,
		keys:       DefaultKeyMap(),
	}
	m.sync()
	return m
}

// sync re-reads the snapshots the view renders from.
func (m *Model) sync() {
	m.chatSnap = m.store.Snapshot()
	m.authSnap = m.session.Snapshot()
	m.documents = m.registry.Documents()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init kicks off the startup fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadArchiveCmd(),
		m.refreshDepartmentsCmd(),
		m.refreshIdentityCmd(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ChatCompletedMsg:
		m.sync()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case DepartmentsRefreshedMsg:
		m.sync()
		m.refreshTranscript()
		return m, nil

	case ResyncMsg:
		m.sync()
		m.refreshTranscript()
		if m.chatSnap.Pending {
			m.viewport.GotoBottom()
		}
		return m, nil

	case ArchiveLoadedMsg:
		if msg.Err != nil {
			m.statusMsg = "could not load saved conversations"
		}
		m.sync()
		return m, nil

	case IdentityRefreshedMsg:
		m.sync()
		// The document list is per-user; refetch it whenever the identity
		// outcome lands.
		return m, m.refreshDocumentsCmd()

	case LoginStartedMsg:
		if msg.Err != nil {
			m.statusMsg = msg.Err.Error()
		} else {
			m.statusMsg = "opening browser for sign-in; restart with -auth-url after the redirect"
		}
		m.sync()
		return m, nil

	case DocumentsRefreshedMsg:
		m.sync()
		if m.docCursor >= len(m.documents) {
			m.docCursor = 0
		}
		return m, nil

	case DocumentUploadedMsg:
		m.sync()
		if msg.Err != nil {
			m.statusMsg = msg.Err.Error()
		} else {
			m.statusMsg = "document uploaded"
		}
		return m, nil

	case DocumentDeletedMsg:
		m.sync()
		if msg.Err != nil {
			m.statusMsg = msg.Err.Error()
		}
		if m.docCursor >= len(m.documents) && m.docCursor > 0 {
			m.docCursor--
		}
		return m, nil

	case spinner.TickMsg:
		if m.chatSnap.Pending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.theme.SetSize(msg.Width, msg.Height)

	// Layout: header + transcript + input + status bar, sidebar on the left.
	const (
		headerHeight = 1
		inputHeight  = 2
		statusHeight = 1
	)
	vpHeight := m.height - headerHeight - inputHeight - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width - sidebarWidth
	if vpWidth < 20 {
		vpWidth = 20
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight

	inputWidth := m.width - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	// Rebuild the markdown renderer for the new wrap width.
	if m.markdown {
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(vpWidth-4),
		); err == nil {
			m.renderer = r
		}
	}

	m.refreshTranscript()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showDocs {
		return m.handleDocsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		content := strings.TrimSpace(m.input.Value())
		// The store is asked directly; the snapshot can lag a just-started
		// send until the poll tick re-syncs it.
		if content == "" || m.store.IsPending() {
			return m, nil
		}
		m.input.Reset()
		m.statusMsg = ""
		// The optimistic user message is visible on the next completed
		// snapshot; start the spinner alongside the send.
		return m, tea.Batch(m.sendCmd(content), m.spin.Tick, m.pollPendingCmd())

	case key.Matches(msg, m.keys.NewChat):
		m.store.StartNewChat()
		m.sync()
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.NextDept):
		m.cycleDepartment(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevDept):
		m.cycleDepartment(-1)
		return m, nil

	case key.Matches(msg, m.keys.NextConv):
		m.cycleConversation(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevConv):
		m.cycleConversation(-1)
		return m, nil

	case key.Matches(msg, m.keys.Docs):
		m.showDocs = true
		m.docCursor = 0
		return m, m.refreshDocumentsCmd()

	case key.Matches(msg, m.keys.Login):
		if m.authSnap.Status == auth.StatusAuthenticated {
			m.statusMsg = "already signed in"
			return m, nil
		}
		return m, m.loginCmd()

	case key.Matches(msg, m.keys.Logout):
		m.session.Logout()
		m.sync()
		m.statusMsg = "signed out"
		return m, m.refreshDocumentsCmd()

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDocsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CloseDocs):
		m.showDocs = false
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		// The input line doubles as an upload prompt while the panel is open.
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return m, nil
		}
		m.input.Reset()
		m.statusMsg = "uploading " + path
		return m, m.uploadDocumentCmd(path)

	case key.Matches(msg, m.keys.Up):
		if m.docCursor > 0 {
			m.docCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.docCursor < len(m.documents)-1 {
			m.docCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteDoc):
		if m.docCursor < len(m.documents) {
			return m, m.deleteDocumentCmd(m.documents[m.docCursor].ID)
		}
		return m, nil
	}

	// Everything else edits the upload path prompt.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// pollPendingCmd re-syncs shortly after a send starts so the optimistic
// user message shows before the reply lands.
func (m Model) pollPendingCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return ResyncMsg{}
	})
}

// =============================================================================
// NAVIGATION HELPERS
// =============================================================================

func (m *Model) cycleDepartment(delta int) {
	depts := m.chatSnap.Departments
	if len(depts) == 0 {
		return
	}
	idx := 0
	for i, d := range depts {
		if d.ID == m.chatSnap.Selected {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(depts)) % len(depts)
	m.store.SelectDepartment(depts[idx].ID)
	m.sync()
	m.refreshTranscript()
}

func (m *Model) cycleConversation(delta int) {
	convs := m.chatSnap.Conversations
	if len(convs) == 0 {
		return
	}
	idx := -1
	for i, c := range convs {
		if c.ID == m.chatSnap.ActiveID {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = 0
	} else {
		idx = (idx + delta + len(convs)) % len(convs)
	}
	m.store.SelectConversation(convs[idx].ID)
	m.sync()
	m.refreshTranscript()
	m.viewport.GotoBottom()
}
