// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the process-wide zerolog logger.
//
// The TUI owns stdout, so logs always go to a file in the data directory.
// Logging failures are non-fatal: if the file cannot be opened the logger
// is disabled rather than surfaced to the user.
package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup directs the global logger at the given file and returns a closer
// for shutdown. The bearer token must never be passed to any log call.
func Setup(path string) func() {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return func() {}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = zerolog.New(f).With().Timestamp().Logger()

	return func() { f.Close() }
}
