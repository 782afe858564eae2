// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the ragchat TUI.
//
// This file defines the Bubble Tea message types used by the chat view.
package chat

import (
	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// QUERY MESSAGES
// =============================================================================

// QueryResultMsg delivers the backend's answer (or failure) for the query
// in flight.
type QueryResultMsg struct {
	Answer  string
	Sources []model.Source
	Err     error
}

// =============================================================================
// REVEAL MESSAGES
// =============================================================================

// RevealTickMsg drives one step of the active reveal sequence. Gen is the
// reveal generation the tick was scheduled for; a tick whose generation
// no longer matches the model's is stale and must mutate nothing.
type RevealTickMsg struct {
	Gen int
}

// CaretBlinkMsg toggles the caret marker while a reveal is in flight. It
// carries the generation for the same staleness rule as RevealTickMsg.
type CaretBlinkMsg struct {
	Gen int
}

// =============================================================================
// TRANSCRIPT MESSAGES
// =============================================================================

// ExportDoneMsg reports the outcome of an export command.
type ExportDoneMsg struct {
	Path string
	Err  error
}
