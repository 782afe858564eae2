// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat view rendering.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.inputView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m Model) headerView() string {
	title := m.theme.HeaderTitle.Render("ragchat")
	return m.theme.Header.Width(m.width).Render(title)
}

func (m Model) inputView() string {
	if m.state == StateWaiting {
		return m.spin.View() + " waiting for answer..."
	}
	return m.input.View()
}

func (m Model) statusView() string {
	left := m.theme.StatusState.Render(m.state.String())
	mid := ""
	if m.statusMsg != "" {
		mid = "  " + m.statusMsg
	}
	help := m.theme.ShortcutDesc.Render("  enter send · esc skip · ctrl+l clear · ctrl+e export · ctrl+h help · ctrl+c quit")
	return m.theme.StatusBar.Width(m.width).Render(left + mid + help)
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport re-renders the transcript into the viewport. The newest
// assistant message uses the reveal's current prefix while a reveal is in
// flight.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

func (m *Model) renderTranscript() string {
	var b strings.Builder

	if m.showHelp {
		b.WriteString(m.helpView())
		b.WriteString("\n\n")
	}

	msgs := m.transcript.Messages
	for i, msg := range msgs {
		revealing := m.state == StateRevealing &&
			i == len(msgs)-1 &&
			msg.Role == model.RoleAssistant &&
			m.reveal != nil

		b.WriteString(m.renderMessage(msg, revealing))
		if i < len(msgs)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (m *Model) renderMessage(msg model.Message, revealing bool) string {
	var label string
	switch msg.Role {
	case model.RoleUser:
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
	case model.RoleAssistant:
		label = m.theme.AssistantLabel.Render(msg.Role.DisplayName())
	default:
		label = m.theme.SystemText.Render(msg.Role.DisplayName())
	}

	content := msg.Content
	if revealing {
		content = m.reveal.Revealed()
	}

	body := renderHTML(m.theme, content)
	if revealing && m.caretOn {
		body += m.theme.CaretStyle.Render(styles.Caret)
	}

	out := label + "\n" + body

	if msg.Role == model.RoleAssistant && m.showSources && !revealing && len(msg.Sources) > 0 {
		out += "\n" + m.renderSources(msg.Sources)
	}
	return lipgloss.NewStyle().Width(m.width).Render(out)
}

// renderSources lists the retrieval hits that backed an answer.
func (m *Model) renderSources(sources []model.Source) string {
	var b strings.Builder
	b.WriteString(m.theme.SourcesHeading.Render("Sources"))
	for _, s := range sources {
		line := "  • " + s.Title
		if s.Year != "" {
			line += " (" + s.Year + ")"
		}
		if s.Link != "" {
			line += " " + m.theme.LinkURL.Render(s.Link)
		}
		b.WriteString("\n")
		b.WriteString(m.theme.SourceLine.Render(line))
		if s.Snippet != "" {
			snippet := "    " + util.TruncateWidth(s.Snippet, m.width-6)
			b.WriteString("\n")
			b.WriteString(m.theme.SourceLine.Render(snippet))
		}
	}
	return b.String()
}

func (m *Model) helpView() string {
	lines := []string{
		m.theme.Bold.Render("Commands"),
		"  /clear    wipe the conversation",
		"  /export   write the chat history to a file",
		"  /sources  toggle the source list under answers",
		"  /help     toggle this help",
	}
	return strings.Join(lines, "\n")
}
