// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat update loop.
package chat

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/sanitize"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case key.Matches(msg, m.keys.Cancel):
			if m.state == StateRevealing {
				m.finishReveal()
				m.refreshViewport()
				m.viewport.GotoBottom()
			}

		case key.Matches(msg, m.keys.Clear):
			m.clearChat()

		case key.Matches(msg, m.keys.Export):
			cmds = append(cmds, m.exportCmd())

		case key.Matches(msg, m.keys.ToggleHelp):
			m.showHelp = !m.showHelp
			m.refreshViewport()

		case key.Matches(msg, m.keys.ScrollUp):
			m.viewport.HalfViewUp()

		case key.Matches(msg, m.keys.ScrollDown):
			m.viewport.HalfViewDown()

		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case QueryResultMsg:
		cmds = append(cmds, m.handleQueryResult(msg))

	case RevealTickMsg:
		cmds = append(cmds, m.handleRevealTick(msg))

	case CaretBlinkMsg:
		cmds = append(cmds, m.handleCaretBlink(msg))

	case ExportDoneMsg:
		if msg.Err != nil {
			m.statusMsg = "export failed: " + msg.Err.Error()
		} else {
			m.statusMsg = "exported to " + msg.Path
		}

	case spinner.TickMsg:
		if m.state == StateWaiting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit sends the typed question. Nothing happens while a query is in
// flight; submitting during a reveal first snaps that reveal to its full
// text so the new exchange starts clean.
func (m *Model) submit() tea.Cmd {
	if m.state == StateWaiting {
		return nil
	}
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return nil
	}
	if cmd, handled := m.slashCommand(q); handled {
		m.input.Reset()
		return cmd
	}
	if m.state == StateRevealing {
		m.finishReveal()
	}

	m.transcript.Append(model.NewUserMessage(html.EscapeString(q)))
	m.persist()

	m.input.Reset()
	m.statusMsg = ""
	m.state = StateWaiting
	m.refreshViewport()
	m.viewport.GotoBottom()

	history := m.transcript.Messages
	return tea.Batch(
		m.spin.Tick,
		queryCmd(m.client, q, history),
	)
}

// queryCmd runs the backend query off the update loop.
func queryCmd(client *rag.Client, q string, history []model.Message) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Query(context.Background(), q, history)
		if err != nil {
			return QueryResultMsg{Err: err}
		}
		return QueryResultMsg{Answer: resp.Answer, Sources: resp.Sources}
	}
}

// handleQueryResult stores the answer (or an apologetic fallback) and
// starts revealing it.
func (m *Model) handleQueryResult(msg QueryResultMsg) tea.Cmd {
	var content string
	var sources []model.Source

	if msg.Err != nil {
		log.Warn().Err(msg.Err).Msg("query failed")
		content = errorHTML(msg.Err)
	} else {
		content = sanitize.Sanitize(msg.Answer)
		sources = msg.Sources
	}

	m.transcript.Append(model.NewAssistantMessage(content, sources))
	m.persist()

	cmd := m.startReveal(content)
	m.refreshViewport()
	m.viewport.GotoBottom()
	return cmd
}

// errorHTML renders a backend failure as a normal assistant message. The
// error text is escaped so it can never smuggle markup into the chat.
func errorHTML(err error) string {
	detail := err.Error()
	if apiErr, ok := err.(*rag.APIError); ok {
		detail = fmt.Sprintf("the server answered with status %d", apiErr.Status)
	}
	return "<p>Sorry, something went wrong while answering your question (" +
		html.EscapeString(detail) + "). Please try again.</p>"
}

// =============================================================================
// LAYOUT
// =============================================================================

// resize recomputes the viewport on terminal size changes.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerH := 1
	inputH := 1
	statusH := 1
	vpHeight := height - headerH - inputH - statusH
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 4
	m.refreshViewport()
	m.viewport.GotoBottom()
}
