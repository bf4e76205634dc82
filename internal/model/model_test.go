// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// DEPARTMENT TESTS
// =============================================================================

func TestDefaultDepartments(t *testing.T) {
	metas := DefaultDepartments()
	if len(metas) != 6 {
		t.Fatalf("DefaultDepartments() returned %d entries, want 6", len(metas))
	}
	if metas[0].ID != DeptEngineering {
		t.Errorf("first department = %q, want engineering", metas[0].ID)
	}
	for _, m := range metas {
		if m.Name == "" {
			t.Errorf("department %q has empty name", m.ID)
		}
		if m.Description != "" {
			t.Errorf("default department %q should have empty description", m.ID)
		}
	}
}

func TestDepartmentIDFromName(t *testing.T) {
	tests := []struct {
		name   string
		wantID DepartmentID
		wantOK bool
	}{
		{"Engineering", DeptEngineering, true},
		{"engineering", DeptEngineering, true},
		{"C-Level", DeptCLevel, true},
		{"c level", DeptCLevel, true},
		{"MARKETING", DeptMarketing, true},
		{"Delivery", DeptDelivery, true},
		{"Admin", DeptAdmin, true},
		{"Sales", DeptSales, true},
		{"Finance", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := DepartmentIDFromName(tc.name)
			if ok != tc.wantOK || id != tc.wantID {
				t.Errorf("DepartmentIDFromName(%q) = (%q, %t), want (%q, %t)",
					tc.name, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello")
	if msg.ID == "" {
		t.Error("expected generated id")
	}
	if msg.Sender != SenderUser {
		t.Errorf("Sender = %q, want user", msg.Sender)
	}
	if msg.Department != "" {
		t.Errorf("user message should not carry a department, got %q", msg.Department)
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestNewDepartmentMessage(t *testing.T) {
	msg := NewDepartmentMessage(DeptSales, "reply")
	if msg.Sender != SenderDepartment {
		t.Errorf("Sender = %q, want department", msg.Sender)
	}
	if msg.Department != DeptSales {
		t.Errorf("Department = %q, want sales", msg.Department)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestTitleFromContent(t *testing.T) {
	if got := TitleFromContent("What's the process?"); got != "What's the process?" {
		t.Errorf("short title = %q, want unchanged", got)
	}

	long := strings.Repeat("a", 41)
	got := TitleFromContent(long)
	if got != strings.Repeat("a", 40)+"..." {
		t.Errorf("long title = %q, want 40 runes plus ellipsis", got)
	}

	exact := strings.Repeat("b", 40)
	if got := TitleFromContent(exact); got != exact {
		t.Errorf("exact-length title = %q, want unchanged", got)
	}

	// Rune boundaries, not bytes.
	unicode := strings.Repeat("é", 50)
	got = TitleFromContent(unicode)
	if got != strings.Repeat("é", 40)+"..." {
		t.Errorf("unicode title truncated on byte boundary: %q", got)
	}
}

func TestConversationTouch(t *testing.T) {
	conv := NewConversation(DeptEngineering, "title", "first reply", []Message{
		NewUserMessage("q"),
		NewDepartmentMessage(DeptEngineering, "first reply"),
	})
	if !strings.HasPrefix(conv.ID, "conv-") {
		t.Errorf("ID = %q, want conv- prefix", conv.ID)
	}

	buf := append(conv.Messages, NewUserMessage("q2"), NewDepartmentMessage(DeptEngineering, "second reply"))
	conv.Touch("second reply", buf)

	if conv.LastMessage != "second reply" {
		t.Errorf("LastMessage = %q, want second reply", conv.LastMessage)
	}
	if conv.MessageCount() != 4 {
		t.Errorf("MessageCount = %d, want 4", conv.MessageCount())
	}
}

func TestConversationClone(t *testing.T) {
	conv := NewConversation(DeptAdmin, "t", "r", []Message{NewUserMessage("q")})
	clone := conv.Clone()

	clone.Messages[0].Content = "mutated"
	if conv.Messages[0].Content == "mutated" {
		t.Error("Clone shares message backing array with original")
	}
}
