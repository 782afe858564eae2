// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragchat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Caret is the marker appended after the revealed prefix while an answer
// is still being revealed.
const Caret = "▌"

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER AND STATUS STYLES
	// ==========================================================================

	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	StatusBar    lipgloss.Style
	StatusState  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemText     lipgloss.Style
	ErrorText      lipgloss.Style
	CaretStyle     lipgloss.Style

	// ==========================================================================
	// HTML RENDERING STYLES
	// ==========================================================================

	Bold    lipgloss.Style
	Italic  lipgloss.Style
	Code    lipgloss.Style
	Pre     lipgloss.Style
	Link    lipgloss.Style
	LinkURL lipgloss.Style

	// ==========================================================================
	// SOURCES BLOCK STYLES
	// ==========================================================================

	SourcesHeading lipgloss.Style
	SourceLine     lipgloss.Style

	// ==========================================================================
	// INPUT STYLES
	// ==========================================================================

	InputPrompt lipgloss.Style
}

// NewTheme creates a theme matched to the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}

	t.Header = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("26")).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)
	t.StatusState = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	t.AssistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	t.SystemText = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("244"))
	t.ErrorText = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	t.CaretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	t.Bold = lipgloss.NewStyle().Bold(true)
	t.Italic = lipgloss.NewStyle().Italic(true)
	t.Code = lipgloss.NewStyle().
		Foreground(lipgloss.Color("215")).
		Background(lipgloss.Color("236"))
	t.Pre = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("235"))
	t.Link = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75"))
	t.LinkURL = lipgloss.NewStyle().Faint(true)

	t.SourcesHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	t.SourceLine = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	t.InputPrompt = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))

	return t
}
