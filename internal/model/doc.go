// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// # Key Types
//
//   - Message: a single user/assistant/system message; assistant content is
//     sanitized HTML as returned by the RAG backend
//   - Source: a retrieved document reference attached to an answer
//   - Transcript: the append-only, chronologically ordered message list
//
// The transcript is the unit of persistence: it is serialized as a JSON
// array and written to disk on every change by the storage package.
package model
