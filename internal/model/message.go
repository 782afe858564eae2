// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// Source is a document reference returned by the backend alongside an
// answer. Field names mirror the backend payload.
type Source struct {
	Title   string `json:"titulo"`
	Authors string `json:"autores,omitempty"`
	Year    string `json:"ano,omitempty"`
	Event   string `json:"evento,omitempty"`
	Area    string `json:"area,omitempty"`
	Link    string `json:"link,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the transcript.
//
// Content is plain text for user messages and sanitized HTML for assistant
// messages. Sources are only set on assistant messages that carried them.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sources   []Source  `json:"sources,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message with HTML content and
// optional sources.
func NewAssistantMessage(content string, sources []Source) Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Sources = sources
	return msg
}

// IsEmpty returns true if the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}
