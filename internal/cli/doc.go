// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the command-line surface of ragchat: argument
// parsing and the handlers for the non-TUI commands (ask, export, clear,
// config, version). The default command, with no arguments, is the TUI.
package cli
