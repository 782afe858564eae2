// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/reveal"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes a readable transcript. Assistant HTML is reduced
// to plain text and each answer's sources become a link list.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export converts the transcript to Markdown.
func (e *MarkdownExporter) Export(t *model.Transcript) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("transcript is nil")
	}

	var sb strings.Builder
	sb.WriteString("# Chat History\n\n")
	sb.WriteString(fmt.Sprintf("Exported: %s\n\n---\n\n", time.Now().Format(time.RFC3339)))

	for _, msg := range t.Messages {
		sb.WriteString(fmt.Sprintf("**%s** (%s):\n\n", msg.Role.DisplayName(), msg.Timestamp.Format("2006-01-02 15:04")))
		sb.WriteString(reveal.StripTags(msg.Content))
		sb.WriteString("\n")

		if len(msg.Sources) > 0 {
			sb.WriteString("\nSources:\n")
			for _, src := range msg.Sources {
				line := "- " + src.Title
				if src.Year != "" {
					line += " (" + src.Year + ")"
				}
				if src.Link != "" {
					line = fmt.Sprintf("- [%s](%s)", strings.TrimPrefix(line, "- "), src.Link)
				}
				sb.WriteString(line + "\n")
			}
		}
		sb.WriteString("\n---\n\n")
	}

	return []byte(sb.String()), nil
}

// Filename returns the fixed Markdown export filename.
func (e *MarkdownExporter) Filename() string {
	return MarkdownFilename
}
