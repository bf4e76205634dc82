// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/deskchat-tui/internal/api"
	"github.com/jeranaias/deskchat-tui/internal/auth"
	"github.com/jeranaias/deskchat-tui/internal/chat"
	"github.com/jeranaias/deskchat-tui/internal/docs"
	"github.com/jeranaias/deskchat-tui/internal/model"
	"github.com/jeranaias/deskchat-tui/internal/ui/styles"
)

// stubBackend satisfies the chat, auth and docs gateway interfaces. A
// non-nil block channel holds every Chat call open until it is closed.
type stubBackend struct {
	reply string
	block chan struct{}
}

func (s *stubBackend) Chat(context.Context, string, string, []api.HistoryItem) (string, error) {
	if s.block != nil {
		<-s.block
	}
	return s.reply, nil
}

func (s *stubBackend) Departments(context.Context) ([]api.DepartmentInfo, error) {
	return nil, nil
}

func (s *stubBackend) AuthURL(context.Context) (string, error) {
	return "https://accounts.example.com/auth", nil
}

func (s *stubBackend) Me(context.Context) (*model.Identity, error) {
	return &model.Identity{ID: 1, Name: "Test User", Email: "test@example.com"}, nil
}

func (s *stubBackend) Documents(context.Context) ([]model.Document, error) {
	return nil, nil
}

func (s *stubBackend) UploadDocument(context.Context, string, io.Reader) (*model.Document, error) {
	return &model.Document{ID: 1}, nil
}

func (s *stubBackend) DeleteDocument(context.Context, int64) error {
	return nil
}

type noopOpener struct{}

func (noopOpener) Open(string) error { return nil }

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newTestModelWith(t, &stubBackend{reply: "a reply"})
}

func newTestModelWith(t *testing.T, backend *stubBackend) Model {
	t.Helper()
	session := auth.NewSession(backend, &auth.MemoryTokenStore{}, noopOpener{})
	store := chat.NewStore(backend, session, nil)
	registry := docs.NewRegistry(backend, session)
	return New(store, session, registry, styles.New("dark"), false, false)
}

func resized(t *testing.T, m Model) Model {
	t.Helper()
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return nm.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)

	if m.chatSnap.Selected != model.DeptEngineering {
		t.Errorf("selected = %q, want engineering", m.chatSnap.Selected)
	}
	if len(m.chatSnap.Departments) != 6 {
		t.Errorf("departments = %d, want 6", len(m.chatSnap.Departments))
	}
	if m.showDocs {
		t.Error("documents panel open at startup")
	}
}

func TestCycleDepartmentWraps(t *testing.T) {
	m := resized(t, newTestModel(t))

	m.cycleDepartment(-1)
	if m.chatSnap.Selected != model.DeptMarketing {
		t.Errorf("selected = %q, want marketing (wrap backwards)", m.chatSnap.Selected)
	}

	m.cycleDepartment(1)
	if m.chatSnap.Selected != model.DeptEngineering {
		t.Errorf("selected = %q, want engineering (wrap forwards)", m.chatSnap.Selected)
	}
}

func TestNewChatKeyClearsBuffer(t *testing.T) {
	m := resized(t, newTestModel(t))
	m.store.SelectConversation("none") // no-op, keeps coverage honest

	nm, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = nm.(Model)

	if m.chatSnap.ActiveID != "" {
		t.Errorf("active id = %q, want empty", m.chatSnap.ActiveID)
	}
	if len(m.chatSnap.Buffer) != 0 {
		t.Errorf("buffer length = %d, want 0", len(m.chatSnap.Buffer))
	}
}

func TestEmptyTranscriptNamesDepartment(t *testing.T) {
	m := resized(t, newTestModel(t))

	out := m.renderMessages()
	if !strings.Contains(out, "Engineering") {
		t.Errorf("empty state missing department name: %q", out)
	}
}

func TestSubmitIgnoredWhileEmpty(t *testing.T) {
	m := resized(t, newTestModel(t))

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty submit dispatched a command")
	}
}

func TestChatCompletedSyncsSnapshot(t *testing.T) {
	m := resized(t, newTestModel(t))

	// Unauthenticated send appends the fixed warning synchronously.
	m.store.SendMessage(context.Background(), "hello")
	nm, _ := m.Update(ChatCompletedMsg{})
	m = nm.(Model)

	if len(m.chatSnap.Buffer) != 1 {
		t.Fatalf("buffer length = %d, want 1", len(m.chatSnap.Buffer))
	}
	if m.chatSnap.Buffer[0].Content != "Please sign in with Google to ask questions." {
		t.Errorf("content = %q", m.chatSnap.Buffer[0].Content)
	}
}

func TestResyncSyncsSnapshot(t *testing.T) {
	m := resized(t, newTestModel(t))

	m.store.SendMessage(context.Background(), "hello")
	nm, _ := m.Update(ResyncMsg{})
	m = nm.(Model)

	if len(m.chatSnap.Buffer) != 1 {
		t.Errorf("buffer length = %d, want 1 after resync", len(m.chatSnap.Buffer))
	}
}

func TestSubmitIgnoredWhileReplyInFlight(t *testing.T) {
	backend := &stubBackend{reply: "a reply", block: make(chan struct{})}
	m := resized(t, newTestModelWith(t, backend))

	// Sign in so the send reaches the gateway and stays pending.
	launch, _ := url.Parse("http://localhost:3000/?token=tok")
	m.session.Bootstrap(launch)
	if err := m.session.RefreshIdentity(context.Background()); err != nil {
		t.Fatalf("RefreshIdentity: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.store.SendMessage(context.Background(), "first")
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !m.store.IsPending() {
		if time.Now().After(deadline) {
			t.Fatal("send never became pending")
		}
		time.Sleep(time.Millisecond)
	}

	// The snapshot has not seen the send yet; the handler must still
	// refuse a second one.
	m.input.SetValue("second")
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("submit dispatched a send while a reply was in flight")
	}

	close(backend.block)
	<-done
}

func TestTimestampsRenderedWhenEnabled(t *testing.T) {
	m := resized(t, newTestModel(t))
	m.timestamps = true

	msg := model.NewUserMessage("hello")
	msg.Timestamp = time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)

	out := m.renderMessage(msg)
	if !strings.Contains(out, "09:30") {
		t.Errorf("rendered message missing timestamp: %q", out)
	}

	m.timestamps = false
	if out := m.renderMessage(msg); strings.Contains(out, "09:30") {
		t.Errorf("timestamp rendered while disabled: %q", out)
	}
}

func TestDocsPanelToggle(t *testing.T) {
	m := resized(t, newTestModel(t))

	nm, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlO})
	m = nm.(Model)
	if !m.showDocs {
		t.Fatal("documents panel did not open")
	}
	if cmd == nil {
		t.Error("opening the panel should refresh documents")
	}

	nm, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = nm.(Model)
	if m.showDocs {
		t.Error("documents panel did not close")
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	m := newTestModel(t)
	if out := m.View(); out == "" {
		t.Error("pre-resize view is empty")
	}
}
