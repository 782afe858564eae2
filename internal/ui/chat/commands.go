// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat slash commands.
package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/ragchat-tui/internal/export"
	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// slashCommand dispatches "/..." input. The second return reports whether
// the input was a command; non-command input falls through to submit.
func (m *Model) slashCommand(input string) (tea.Cmd, bool) {
	if !strings.HasPrefix(input, "/") {
		return nil, false
	}
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/clear":
		m.clearChat()
		return nil, true
	case "/export":
		return m.exportCmd(), true
	case "/sources":
		m.showSources = !m.showSources
		m.refreshViewport()
		return nil, true
	case "/help":
		m.showHelp = !m.showHelp
		m.refreshViewport()
		return nil, true
	default:
		m.statusMsg = "unknown command: " + input
		return nil, true
	}
}

// clearChat wipes the conversation and its persisted copy. The visible
// list goes empty; the seeded welcome only returns on the next startup.
func (m *Model) clearChat() {
	if m.state == StateRevealing {
		m.finishReveal()
	}
	m.reveal = nil
	m.transcript.Clear()
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear stored transcript")
	}
	m.statusMsg = "conversation cleared"
	m.refreshViewport()
}

// exportCmd writes the chat history next to the data directory. The
// filename is fixed, so repeated exports overwrite the same file.
func (m *Model) exportCmd() tea.Cmd {
	// Snapshot so the export sees a stable message list.
	snapshot := &model.Transcript{
		Messages:  append([]model.Message(nil), m.transcript.Messages...),
		UpdatedAt: m.transcript.UpdatedAt,
	}
	dir := m.cfg.DataDir
	return func() tea.Msg {
		path, err := export.ToFile(snapshot, export.NewJSONExporter(), dir)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// persist saves the transcript, logging rather than surfacing failures.
// A full disk should not take the chat down.
func (m *Model) persist() {
	if err := m.store.Save(m.transcript); err != nil {
		log.Warn().Err(err).Msg("failed to persist transcript")
	}
}
