// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the ragchat TUI.
//
// It contains the atomic file writer used by the transcript store and
// exporters, and rune-aware string truncation used by the UI.
package util
