// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat model definition.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/reveal"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// STATE
// =============================================================================

// State describes what the chat view is currently doing.
type State int

const (
	// StateReady means the input is live and a new query may be sent.
	StateReady State = iota
	// StateWaiting means a query is in flight and we are waiting for the
	// backend's answer.
	StateWaiting
	// StateRevealing means an answer arrived and is being revealed
	// incrementally.
	StateRevealing
)

// String returns a human-readable state name for the status bar.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "thinking"
	case StateRevealing:
		return "answering"
	default:
		return "ready"
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	cfg    *config.Config
	theme  *styles.Theme
	client *rag.Client
	store  *storage.TranscriptStore
	keys   KeyMap

	transcript *model.Transcript

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	width  int
	height int
	ready  bool

	state State

	// reveal holds the in-progress reveal for the newest assistant
	// message. revealGen is bumped every time a new reveal starts;
	// ticks carrying an older generation are dropped.
	reveal    *reveal.Reveal
	revealGen int
	caretOn   bool

	showSources bool
	showHelp    bool
	statusMsg   string
}

// New creates the chat model. The transcript is loaded from the store up
// front so the view has history (or the seeded welcome) on first render.
func New(cfg *config.Config, client *rag.Client, store *storage.TranscriptStore) Model {
	theme := styles.NewTheme()

	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Prompt = theme.InputPrompt.Render("> ")
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.StatusState

	return Model{
		cfg:         cfg,
		theme:       theme,
		client:      client,
		store:       store,
		keys:        DefaultKeyMap(),
		transcript:  store.Load(),
		input:       ti,
		spin:        sp,
		state:       StateReady,
		showSources: cfg.UI.ShowSources,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Transcript exposes the current transcript, mainly for tests.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// State exposes the current view state, mainly for tests.
func (m Model) State() State {
	return m.state
}
