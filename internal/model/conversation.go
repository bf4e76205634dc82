// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// titleRunes is how much of the first user message becomes the title.
const titleRunes = 40

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a stored chat with one department. Messages are kept in
// send order; LastMessage and Timestamp track the latest department reply.
type Conversation struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Department  DepartmentID `json:"department"`
	LastMessage string       `json:"last_message"`
	Timestamp   time.Time    `json:"timestamp"`
	Messages    []Message    `json:"messages"`
}

// NewConversation creates a conversation from a fresh buffer. The title is
// derived from the user message that opened the buffer, the last-message
// fields from the reply that completed it.
func NewConversation(dept DepartmentID, title, lastMessage string, messages []Message) *Conversation {
	return &Conversation{
		ID:          "conv-" + uuid.NewString(),
		Title:       title,
		Department:  dept,
		LastMessage: lastMessage,
		Timestamp:   time.Now(),
		Messages:    messages,
	}
}

// Touch records a completed exchange: the full buffer replaces the stored
// messages and the reply becomes the new last message.
func (c *Conversation) Touch(lastMessage string, messages []Message) {
	c.LastMessage = lastMessage
	c.Timestamp = time.Now()
	c.Messages = messages
}

// MessageCount returns the number of stored messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// Clone returns a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := *c
	clone.Messages = make([]Message, len(c.Messages))
	copy(clone.Messages, c.Messages)
	return &clone
}

// TitleFromContent derives a conversation title from the opening user
// message: the first 40 runes, with an ellipsis when truncated.
func TitleFromContent(content string) string {
	runes := []rune(content)
	if len(runes) <= titleRunes {
		return content
	}
	return string(runes[:titleRunes]) + "..."
}
