// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the chat transcript to files for use outside
// ragchat.
//
// JSON export is the canonical format: the complete message list, written
// to a fixed filename so repeated exports land in the same place. Markdown
// export is a readable rendition with HTML answers collapsed to plain text.
// Exports are pure reads; they never modify the transcript.
package export
