// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal implements the incremental answer reveal used by the chat
// view: a lexical tokenizer that splits sanitized HTML into tag and text
// segments, and a small state machine that reconstructs a growing prefix of
// the HTML one step at a time.
//
// # Design
//
// Tags are always emitted atomically so the revealed prefix is well-formed
// markup at every step; text runs are emitted a few characters per step. The
// per-step delay and character step size are tiered by total text size
// (PaceFor), so long answers reveal faster per tick and total reveal time
// stays roughly bounded instead of scaling linearly.
//
// The state machine carries no timers or goroutines of its own. Callers
// (the Bubble Tea chat view) drive it with scheduled ticks and use the delay
// returned by Step to schedule the next one, which keeps the machine
// independently testable without a rendering surface.
package reveal
