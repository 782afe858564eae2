// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// WelcomeHTML is the seeded assistant greeting shown on first run and
// whenever the persisted transcript is missing or unreadable.
const WelcomeHTML = "<p>Hello! I answer questions using the indexed document " +
	"collection. Ask me anything, and I will cite the documents I used.</p>"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the full conversation as an append-only message list.
// Ordering is strictly chronological; messages are never edited or removed
// except by Clear, which resets the whole transcript.
type Transcript struct {
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{
		Messages:  make([]Message, 0),
		UpdatedAt: time.Now(),
	}
}

// SeededTranscript creates a transcript containing only the welcome message.
func SeededTranscript() *Transcript {
	t := NewTranscript()
	t.Append(NewAssistantMessage(WelcomeHTML, nil))
	return t
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.Messages = append(t.Messages, msg)
	t.UpdatedAt = time.Now()
}

// Clear removes all messages.
func (t *Transcript) Clear() {
	t.Messages = t.Messages[:0]
	t.UpdatedAt = time.Now()
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.Messages)
}

// Last returns the most recent message, or a zero Message if empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// Window returns the most recent n messages in chronological order.
// It returns the whole list when n exceeds the transcript length.
func (t *Transcript) Window(n int) []Message {
	if n <= 0 {
		return nil
	}
	if n >= len(t.Messages) {
		return t.Messages
	}
	return t.Messages[len(t.Messages)-n:]
}
