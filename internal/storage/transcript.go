// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT STORE
// =============================================================================

// TranscriptStore persists the single chat transcript to one JSON file.
type TranscriptStore struct {
	// Path is the transcript file location.
	Path string
}

// NewTranscriptStore creates a store backed by the given file path.
func NewTranscriptStore(path string) *TranscriptStore {
	return &TranscriptStore{Path: path}
}

// Load reads the persisted transcript. A missing or unreadable file and
// corrupt JSON all fall back to the seeded welcome transcript; Load never
// returns an error because startup must not fail on bad local state.
func (s *TranscriptStore) Load() *model.Transcript {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", s.Path).Msg("transcript unreadable, reseeding")
		}
		return model.SeededTranscript()
	}

	var t model.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		log.Warn().Err(err).Str("path", s.Path).Msg("transcript corrupt, reseeding")
		return model.SeededTranscript()
	}
	if t.Messages == nil {
		t.Messages = make([]model.Message, 0)
	}
	return &t
}

// Save writes the transcript atomically. Called after every change so the
// on-disk state always matches the screen.
func (s *TranscriptStore) Save(t *model.Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.Path, data, 0644)
}

// Clear evicts the persisted transcript. A missing file is not an error.
func (s *TranscriptStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether a persisted transcript is present.
func (s *TranscriptStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}
