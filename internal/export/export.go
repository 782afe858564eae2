// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// JSONFilename is the fixed name of the JSON export file.
const JSONFilename = "chat-history.json"

// MarkdownFilename is the fixed name of the Markdown export file.
const MarkdownFilename = "chat-history.md"

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a transcript to a target format.
type Exporter interface {
	// Export renders the transcript and returns the file content.
	Export(t *model.Transcript) ([]byte, error)

	// Filename returns the fixed output filename for the format.
	Filename() string
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ToFile renders the transcript with the given exporter and writes it into
// outputDir, returning the written path.
func ToFile(t *model.Transcript, exporter Exporter, outputDir string) (string, error) {
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	path := filepath.Join(outputDir, exporter.Filename())
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
