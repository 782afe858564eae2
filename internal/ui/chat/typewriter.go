// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat reveal scheduling.
package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/reveal"
)

// =============================================================================
// TICK COMMANDS
// =============================================================================

// revealTickCmd schedules the next reveal step after delay. The generation
// is baked into the message so a tick outlives its reveal harmlessly.
func revealTickCmd(gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RevealTickMsg{Gen: gen}
	})
}

// caretBlinkCmd schedules the next caret toggle.
func caretBlinkCmd(gen int) tea.Cmd {
	return tea.Tick(reveal.CaretBlinkInterval, func(time.Time) tea.Msg {
		return CaretBlinkMsg{Gen: gen}
	})
}

// =============================================================================
// REVEAL LIFECYCLE
// =============================================================================

// startReveal begins revealing html as the newest assistant message. Any
// previous reveal is snapped to completion first so the transcript never
// shows two partial answers.
func (m *Model) startReveal(html string) tea.Cmd {
	if m.reveal != nil && !m.reveal.Done() {
		m.reveal.Finish()
	}
	m.revealGen++
	m.reveal = reveal.NewFromHTML(html)
	m.state = StateRevealing
	m.caretOn = true
	return tea.Batch(
		revealTickCmd(m.revealGen, reveal.InitialDelay),
		caretBlinkCmd(m.revealGen),
	)
}

// finishReveal snaps the active reveal to its full text and returns the
// view to the ready state. The generation is bumped so ticks already
// scheduled for the finished reveal arrive stale: without the bump, a
// pending tick would see a done reveal and flip the state back to ready
// even if the caller has since moved to waiting.
func (m *Model) finishReveal() {
	if m.reveal != nil {
		m.reveal.Finish()
	}
	m.revealGen++
	m.caretOn = false
	m.state = StateReady
}

// handleRevealTick advances the reveal by one step. Stale ticks (wrong
// generation) are dropped without touching any state or rescheduling.
func (m *Model) handleRevealTick(msg RevealTickMsg) tea.Cmd {
	if msg.Gen != m.revealGen || m.reveal == nil {
		return nil
	}
	delay := m.reveal.Step()
	m.refreshViewport()
	m.viewport.GotoBottom()
	if m.reveal.Done() {
		m.caretOn = false
		m.state = StateReady
		return nil
	}
	return revealTickCmd(m.revealGen, delay)
}

// handleCaretBlink toggles the caret. Blinking stops once the reveal is
// done or the tick is stale.
func (m *Model) handleCaretBlink(msg CaretBlinkMsg) tea.Cmd {
	if msg.Gen != m.revealGen || m.reveal == nil || m.reveal.Done() {
		return nil
	}
	m.caretOn = !m.caretOn
	m.refreshViewport()
	return caretBlinkCmd(m.revealGen)
}
