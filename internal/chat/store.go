// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"

	"github.com/jeranaias/deskchat-tui/internal/api"
	"github.com/jeranaias/deskchat-tui/internal/model"
)

// signInPrompt is the fixed reply for sends attempted while signed out.
const signInPrompt = "Please sign in with Google to ask questions."

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Gateway is the slice of the backend client the store needs.
type Gateway interface {
	Departments(ctx context.Context) ([]api.DepartmentInfo, error)
	Chat(ctx context.Context, department, message string, history []api.HistoryItem) (string, error)
}

// Authorizer answers whether the user is signed in. The auth session
// implements it.
type Authorizer interface {
	IsAuthenticated() bool
}

// Archive mirrors conversations to disk. May be nil.
type Archive interface {
	Save(conv *model.Conversation) error
	List() ([]*model.Conversation, error)
}

// =============================================================================
// STORE
// =============================================================================

// Store is the conversation state machine. One mutex guards all fields;
// every method is an atomic transition relative to snapshot reads.
type Store struct {
	mu sync.Mutex

	gateway Gateway
	auth    Authorizer
	archive Archive

	conversations []*model.Conversation
	activeID      string // weak reference into conversations; lookup only
	buffer        []model.Message
	pending       bool

	selected    model.DepartmentID
	departments []model.DepartmentMeta
	deptErr     string
}

// NewStore creates a store with the built-in department set and Engineering
// selected. archive may be nil to disable persistence.
func NewStore(gateway Gateway, auth Authorizer, archive Archive) *Store {
	return &Store{
		gateway:     gateway,
		auth:        auth,
		archive:     archive,
		selected:    model.DeptEngineering,
		departments: model.DefaultDepartments(),
	}
}

// LoadArchived populates the conversation list from the archive, newest
// first. Called once at startup; a missing or empty archive is not an error.
func (s *Store) LoadArchived() error {
	if s.archive == nil {
		return nil
	}
	convs, err := s.archive.List()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = convs
	return nil
}

// =============================================================================
// SENDING
// =============================================================================

// SendMessage runs one chat exchange. Callers run it off the render
// goroutine; all failure modes end as conversational turns, never as a
// returned error.
//
// Signed out: a single fixed warning is appended for the selected
// department and no network call is made.
//
// Signed in: the user message is appended optimistically and the
// pending-reply flag raised before the gateway call. On success the reply
// is appended and the active conversation is updated in place, or a new one
// is created at the head of the list when no conversation was active at
// send time. On failure the error text is appended as a department message
// and the stored list is untouched.
//
// A reply that completes after the user switched department or started a
// new chat still lands in whatever buffer is active at completion time.
// Known misattribution window; kept to match the observed behavior of the
// web client this replaces.
func (s *Store) SendMessage(ctx context.Context, content string) {
	s.mu.Lock()

	if !s.auth.IsAuthenticated() {
		s.buffer = append(s.buffer, model.NewDepartmentMessage(s.selected, signInPrompt))
		s.mu.Unlock()
		return
	}

	// History is every turn before the message being sent.
	history := make([]api.HistoryItem, 0, len(s.buffer))
	for _, m := range s.buffer {
		role := "assistant"
		if m.Sender == model.SenderUser {
			role = "user"
		}
		history = append(history, api.HistoryItem{Role: role, Content: m.Content})
	}

	s.buffer = append(s.buffer, model.NewUserMessage(content))
	s.pending = true

	// Captured at send time; the buffer is re-read at completion.
	dept := s.selected
	deptName := s.departmentNameLocked(dept)
	activeAtSend := s.activeID
	s.mu.Unlock()

	reply, err := s.gateway.Chat(ctx, deptName, content, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false

	if err != nil {
		s.buffer = append(s.buffer, model.NewDepartmentMessage(dept, err.Error()))
		return
	}

	s.buffer = append(s.buffer, model.NewDepartmentMessage(dept, reply))
	snapshot := make([]model.Message, len(s.buffer))
	copy(snapshot, s.buffer)

	if activeAtSend != "" {
		if conv := s.findLocked(activeAtSend); conv != nil {
			conv.Touch(reply, snapshot)
			s.persistLocked(conv)
			return
		}
	}

	conv := model.NewConversation(dept, model.TitleFromContent(content), reply, snapshot)
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	s.persistLocked(conv)
}

// =============================================================================
// NAVIGATION
// =============================================================================

// SelectConversation makes a stored conversation active, restoring its
// messages into the buffer and switching to its department. Unknown ids
// are ignored.
func (s *Store) SelectConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.findLocked(id)
	if conv == nil {
		return
	}

	s.activeID = id
	s.buffer = make([]model.Message, len(conv.Messages))
	copy(s.buffer, conv.Messages)
	s.selected = conv.Department
}

// StartNewChat deactivates the current conversation and clears the buffer.
// The stored list is untouched.
func (s *Store) StartNewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
	s.buffer = nil
}

// SelectDepartment switches the selected department, deactivating the
// current conversation and discarding any buffered messages that were
// never persisted.
func (s *Store) SelectDepartment(dept model.DepartmentID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = dept
	s.activeID = ""
	s.buffer = nil
}

// =============================================================================
// DEPARTMENT METADATA
// =============================================================================

// RefreshDepartments fetches the server's department list. Only entries
// whose name maps to a known id are honored; a non-empty mapped result
// replaces the defaults and re-homes the selection if its id disappeared.
// Failures keep the current metadata and record an error for the UI.
func (s *Store) RefreshDepartments(ctx context.Context) {
	infos, err := s.gateway.Departments(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.deptErr = err.Error()
		return
	}
	s.deptErr = ""

	mapped := make([]model.DepartmentMeta, 0, len(infos))
	for _, info := range infos {
		id, ok := model.DepartmentIDFromName(info.Name)
		if !ok {
			continue
		}
		mapped = append(mapped, model.DepartmentMeta{
			ID:          id,
			Name:        info.Name,
			Description: info.Description,
		})
	}
	if len(mapped) == 0 {
		return
	}

	s.departments = mapped
	for _, m := range mapped {
		if m.ID == s.selected {
			return
		}
	}
	s.selected = mapped[0].ID
}

// departmentNameLocked resolves the display name for a department id from
// the current metadata.
func (s *Store) departmentNameLocked(id model.DepartmentID) string {
	for _, m := range s.departments {
		if m.ID == id {
			return m.Name
		}
	}
	return model.DepartmentName(id)
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Snapshot is an atomic view of the store for the render surface.
type Snapshot struct {
	Conversations []*model.Conversation
	ActiveID      string
	Buffer        []model.Message
	Pending       bool
	Selected      model.DepartmentID
	Departments   []model.DepartmentMeta
	DeptError     string
}

// Snapshot returns copies of everything the render surface needs.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ActiveID:  s.activeID,
		Pending:   s.pending,
		Selected:  s.selected,
		DeptError: s.deptErr,
	}

	snap.Conversations = make([]*model.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		snap.Conversations[i] = c.Clone()
	}
	snap.Buffer = make([]model.Message, len(s.buffer))
	copy(snap.Buffer, s.buffer)
	snap.Departments = make([]model.DepartmentMeta, len(s.departments))
	copy(snap.Departments, s.departments)
	return snap
}

// IsPending reports whether a reply is in flight.
func (s *Store) IsPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// =============================================================================
// INTERNAL
// =============================================================================

// findLocked looks a conversation up by id. Caller holds the lock.
func (s *Store) findLocked(id string) *model.Conversation {
	for _, c := range s.conversations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// persistLocked mirrors a conversation to the archive, best effort.
// Caller holds the lock.
func (s *Store) persistLocked(conv *model.Conversation) {
	if s.archive == nil {
		return
	}
	// Archive failures must not disturb the chat loop.
	_ = s.archive.Save(conv.Clone())
}
