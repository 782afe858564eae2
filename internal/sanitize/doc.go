// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sanitize filters backend-produced HTML down to a fixed whitelist
// before it is ever rendered or persisted.
//
// The policy allows only the tags the backend is prompted to emit
// (paragraphs, lists, inline emphasis, anchors, code) and a small attribute
// set. Disallowed markup is dropped silently, never escaped into visible
// text, and script/style bodies are elided entirely. After filtering, every
// anchor that carries an href is rewritten to open in a new context with
// rel="noopener noreferrer", regardless of what the backend sent.
package sanitize
