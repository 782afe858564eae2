// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/ragchat-tui/internal/model"
)

func sampleTranscript() *model.Transcript {
	t := model.NewTranscript()
	t.Append(model.NewUserMessage("what is RAG?"))
	t.Append(model.NewAssistantMessage(
		"<p>Retrieval <b>augmented</b> generation.</p>",
		[]model.Source{{Title: "Survey Paper", Year: "2023", Link: "http://example.com/paper"}},
	))
	return t
}

// =============================================================================
// JSON EXPORT TESTS
// =============================================================================

func TestJSONExport_FixedFilename(t *testing.T) {
	if got := NewJSONExporter().Filename(); got != "chat-history.json" {
		t.Errorf("Filename = %q, want chat-history.json", got)
	}
}

func TestJSONExport_FullMessageList(t *testing.T) {
	data, err := NewJSONExporter().Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		t.Fatalf("Export is not a JSON message array: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[1].Sources[0].Title != "Survey Paper" {
		t.Error("Sources missing from export")
	}
}

func TestJSONExport_NilTranscript(t *testing.T) {
	if _, err := NewJSONExporter().Export(nil); err == nil {
		t.Error("Expected error for nil transcript")
	}
}

// =============================================================================
// MARKDOWN EXPORT TESTS
// =============================================================================

func TestMarkdownExport_PlainTextAndSources(t *testing.T) {
	data, err := NewMarkdownExporter().Export(sampleTranscript())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "<p>") || strings.Contains(out, "<b>") {
		t.Errorf("HTML leaked into Markdown export:\n%s", out)
	}
	if !strings.Contains(out, "Retrieval augmented generation.") {
		t.Errorf("Answer text missing:\n%s", out)
	}
	if !strings.Contains(out, "[Survey Paper (2023)](http://example.com/paper)") {
		t.Errorf("Source link missing:\n%s", out)
	}
	if !strings.Contains(out, "**You**") || !strings.Contains(out, "**Assistant**") {
		t.Errorf("Role labels missing:\n%s", out)
	}
}

// =============================================================================
// FILE WRITING TESTS
// =============================================================================

func TestToFile_WritesIntoOutputDir(t *testing.T) {
	dir := t.TempDir()

	path, err := ToFile(sampleTranscript(), NewJSONExporter(), dir)
	if err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}
	if path != filepath.Join(dir, "chat-history.json") {
		t.Errorf("Unexpected path %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Export file missing: %v", err)
	}
}

func TestToFile_RepeatedExportOverwrites(t *testing.T) {
	dir := t.TempDir()
	tr := sampleTranscript()

	first, err := ToFile(tr, NewJSONExporter(), dir)
	if err != nil {
		t.Fatal(err)
	}
	tr.Append(model.NewUserMessage("another"))
	second, err := ToFile(tr, NewJSONExporter(), dir)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("Fixed filename should be stable: %q vs %q", first, second)
	}

	data, _ := os.ReadFile(second)
	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		t.Fatal(err)
	}
	if len(messages) != 3 {
		t.Errorf("Second export should reflect the appended message, got %d", len(messages))
	}
}
