// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the ragchat TUI.
//
// The view is a standard Bubble Tea model: a viewport holding the rendered
// transcript, a single-line input, and a status bar. One query is in flight
// at a time; while waiting, submission is disabled and a spinner runs.
//
// Answer reveal is driven by tick messages carrying a generation number.
// Each arriving answer bumps the generation, so ticks scheduled for an
// earlier answer are recognized as stale and dropped without touching any
// state - the cooperative cancellation that keeps at most one reveal loop
// alive against the viewport.
package chat
