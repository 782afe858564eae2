// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes the complete message list as pretty-printed JSON.
// The output matches the persisted transcript format, so an export can be
// dropped back into the data directory to restore a conversation.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts the transcript to JSON.
func (e *JSONExporter) Export(t *model.Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	return json.MarshalIndent(t.Messages, "", "  ")
}

// Filename returns the fixed JSON export filename.
func (e *JSONExporter) Filename() string {
	return JSONFilename
}
