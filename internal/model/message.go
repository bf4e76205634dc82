// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser       Sender = "user"
	SenderDepartment Sender = "department"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in a conversation buffer. Department is set iff
// the sender is a department. Ordering within a buffer is insertion order;
// timestamps are informational only.
type Message struct {
	ID         string       `json:"id"`
	Content    string       `json:"content"`
	Sender     Sender       `json:"sender"`
	Department DepartmentID `json:"department,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// NewUserMessage creates a user message with a generated id.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    SenderUser,
		Timestamp: time.Now(),
	}
}

// NewDepartmentMessage creates a department-sender message with a generated id.
func NewDepartmentMessage(dept DepartmentID, content string) Message {
	return Message{
		ID:         uuid.NewString(),
		Content:    content,
		Sender:     SenderDepartment,
		Department: dept,
		Timestamp:  time.Now(),
	}
}
