// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"path/filepath"
	"testing"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// newTestModel builds a chat model backed by a temp directory and a client
// that points nowhere. Tests drive the model directly and never query.
func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	store := storage.NewTranscriptStore(filepath.Join(cfg.DataDir, "transcript.json"))
	client := rag.NewClient("http://127.0.0.1:0", "")
	m := New(cfg, client, store)
	m.resize(80, 24)
	return m
}

func TestStartRevealBumpsGeneration(t *testing.T) {
	m := newTestModel(t)
	gen := m.revealGen

	cmd := m.startReveal("<p>Hello</p>")
	if cmd == nil {
		t.Fatal("startReveal returned no command")
	}
	if m.revealGen != gen+1 {
		t.Errorf("revealGen = %d, want %d", m.revealGen, gen+1)
	}
	if m.state != StateRevealing {
		t.Errorf("state = %v, want StateRevealing", m.state)
	}
	if !m.caretOn {
		t.Error("caret should be on at reveal start")
	}
}

func TestStaleTickMutatesNothing(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewAssistantMessage("<p>First answer</p>", nil))
	m.startReveal("<p>First answer</p>")
	m.handleRevealTick(RevealTickMsg{Gen: m.revealGen})
	staleGen := m.revealGen

	// A second answer supersedes the first.
	m.transcript.Append(model.NewAssistantMessage("<p>Second answer</p>", nil))
	m.startReveal("<p>Second answer</p>")
	m.handleRevealTick(RevealTickMsg{Gen: m.revealGen})
	before := m.reveal.Revealed()

	// The stale tick from the first reveal must not advance anything
	// or schedule a successor.
	if cmd := m.handleRevealTick(RevealTickMsg{Gen: staleGen}); cmd != nil {
		t.Error("stale tick scheduled a follow-up")
	}
	if got := m.reveal.Revealed(); got != before {
		t.Errorf("stale tick advanced reveal: %q -> %q", before, got)
	}
	if m.state != StateRevealing {
		t.Errorf("stale tick changed state to %v", m.state)
	}
}

func TestTickAdvancesUntilDone(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewAssistantMessage("<p>Hi</p>", nil))
	m.startReveal("<p>Hi</p>")

	steps := 0
	for !m.reveal.Done() {
		if cmd := m.handleRevealTick(RevealTickMsg{Gen: m.revealGen}); cmd == nil && !m.reveal.Done() {
			t.Fatal("tick returned no follow-up before completion")
		}
		steps++
		if steps > 100 {
			t.Fatal("reveal did not finish")
		}
	}
	if m.state != StateReady {
		t.Errorf("state after completion = %v, want StateReady", m.state)
	}
	if m.caretOn {
		t.Error("caret still on after completion")
	}
	if got := m.reveal.Revealed(); got != "<p>Hi</p>" {
		t.Errorf("Revealed() = %q, want full text", got)
	}
}

func TestStaleCaretBlinkIsDropped(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewAssistantMessage("<p>Hello there</p>", nil))
	m.startReveal("<p>Hello there</p>")
	staleGen := m.revealGen
	m.startReveal("<p>Replacement</p>")

	on := m.caretOn
	if cmd := m.handleCaretBlink(CaretBlinkMsg{Gen: staleGen}); cmd != nil {
		t.Error("stale blink scheduled a follow-up")
	}
	if m.caretOn != on {
		t.Error("stale blink toggled the caret")
	}
}

func TestEscSnapsRevealToFullText(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewAssistantMessage("<p>A longer answer to skip</p>", nil))
	m.startReveal("<p>A longer answer to skip</p>")
	m.handleRevealTick(RevealTickMsg{Gen: m.revealGen})

	m.finishReveal()

	if !m.reveal.Done() {
		t.Error("reveal not done after finish")
	}
	if got := m.reveal.Revealed(); got != "<p>A longer answer to skip</p>" {
		t.Errorf("Revealed() = %q, want full text", got)
	}
	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
}

func TestPendingTickAfterMidRevealSubmitStaysWaiting(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewAssistantMessage("<p>A long answer being revealed</p>", nil))
	m.startReveal("<p>A long answer being revealed</p>")
	m.handleRevealTick(RevealTickMsg{Gen: m.revealGen})
	pendingGen := m.revealGen

	// Submitting mid-reveal snaps the reveal and puts a query in flight.
	m.input.SetValue("follow-up question")
	if cmd := m.submit(); cmd == nil {
		t.Fatal("submit produced no command")
	}
	if m.state != StateWaiting {
		t.Fatalf("state after submit = %v, want StateWaiting", m.state)
	}

	// The tick scheduled before the submit still arrives. It belongs to
	// the finished reveal and must not unlock the input.
	if cmd := m.handleRevealTick(RevealTickMsg{Gen: pendingGen}); cmd != nil {
		t.Error("pending tick of finished reveal scheduled a follow-up")
	}
	if m.state != StateWaiting {
		t.Errorf("pending tick changed state to %v while query in flight", m.state)
	}
}

func TestClearChatEmptiesTranscript(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewUserMessage("hello"))
	m.transcript.Append(model.NewAssistantMessage("<p>hi</p>", nil))
	m.persist()

	m.clearChat()

	if m.transcript.Len() != 0 {
		t.Errorf("transcript has %d messages after clear, want 0", m.transcript.Len())
	}
	if m.store.Exists() {
		t.Error("stored transcript still exists after clear")
	}
}

func TestSubmitIgnoredWhileWaiting(t *testing.T) {
	m := newTestModel(t)
	m.state = StateWaiting
	m.input.SetValue("another question")

	if cmd := m.submit(); cmd != nil {
		t.Error("submit while waiting produced a command")
	}
	if m.input.Value() != "another question" {
		t.Error("submit while waiting consumed the input")
	}
}

func TestSubmitEmptyInputIsNoop(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("   ")
	n := m.transcript.Len()

	if cmd := m.submit(); cmd != nil {
		t.Error("blank submit produced a command")
	}
	if m.transcript.Len() != n {
		t.Error("blank submit appended a message")
	}
}
