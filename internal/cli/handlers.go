// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// handlers.go - Non-TUI command handlers for ragchat.
package cli

import (
	"context"
	"fmt"
	"html"
	"os"

	"github.com/jeranaias/ragchat-tui/internal/config"
	"github.com/jeranaias/ragchat-tui/internal/export"
	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/reveal"
	"github.com/jeranaias/ragchat-tui/internal/sanitize"
	"github.com/jeranaias/ragchat-tui/internal/storage"
)

// LoadConfig resolves the effective configuration: file, then environment,
// then command-line flags.
func LoadConfig(args *Args) *config.Config {
	cfg := config.Load()
	if args.APIBase != "" {
		cfg.API.Base = args.APIBase
	}
	if args.Token != "" {
		cfg.API.Token = args.Token
	}
	if args.DataDir != "" {
		cfg.DataDir = args.DataDir
	}
	if args.NoSource {
		cfg.UI.ShowSources = false
	}
	return cfg
}

// HandleAsk sends a single question and prints the answer as plain text.
// The stored conversation is used as history and extended with the new
// exchange, so ask and the TUI share one thread.
func HandleAsk(args *Args) error {
	if args.Query == "" {
		return fmt.Errorf("ask requires a question, e.g. ragchat ask \"what is X?\"")
	}

	cfg := LoadConfig(args)
	client := newClient(cfg)
	store := storage.NewTranscriptStore(cfg.TranscriptPath())
	transcript := store.Load()

	resp, err := client.Query(context.Background(), args.Query, transcript.Messages)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	answer := sanitize.Sanitize(resp.Answer)
	fmt.Println(reveal.StripTags(answer))

	if cfg.UI.ShowSources && len(resp.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range resp.Sources {
			line := "  - " + s.Title
			if s.Year != "" {
				line += " (" + s.Year + ")"
			}
			if s.Link != "" {
				line += " " + s.Link
			}
			fmt.Println(line)
		}
	}

	transcript.Append(model.NewUserMessage(html.EscapeString(args.Query)))
	transcript.Append(model.NewAssistantMessage(answer, resp.Sources))
	if err := store.Save(transcript); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save conversation: %v\n", err)
	}
	return nil
}

// HandleExport writes the stored conversation to the data directory.
func HandleExport(args *Args) error {
	cfg := LoadConfig(args)
	store := storage.NewTranscriptStore(cfg.TranscriptPath())
	transcript := store.Load()

	var exporter export.Exporter
	switch args.Format {
	case "", "json":
		exporter = export.NewJSONExporter()
	case "markdown", "md":
		exporter = export.NewMarkdownExporter()
	default:
		return fmt.Errorf("unknown export format %q (want json or markdown)", args.Format)
	}

	path, err := export.ToFile(transcript, exporter, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("Exported %d messages to %s\n", transcript.Len(), path)
	return nil
}

// HandleClear deletes the stored conversation.
func HandleClear(args *Args) error {
	cfg := LoadConfig(args)
	store := storage.NewTranscriptStore(cfg.TranscriptPath())
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	fmt.Println("Conversation cleared.")
	return nil
}

// HandleConfig prints the effective configuration. The token is redacted.
func HandleConfig(args *Args) {
	cfg := LoadConfig(args)
	token := "(none)"
	if cfg.API.Token != "" {
		token = "(set)"
	}
	fmt.Println("ragchat configuration:")
	fmt.Printf("  api base:       %s\n", cfg.API.Base)
	fmt.Printf("  token:          %s\n", token)
	fmt.Printf("  timeout:        %s\n", cfg.Timeout())
	fmt.Printf("  top_k:          %d\n", cfg.Chat.TopK)
	fmt.Printf("  history window: %d\n", cfg.Chat.HistoryWindow)
	fmt.Printf("  contextualize:  %t\n", cfg.Chat.Contextualize)
	fmt.Printf("  show sources:   %t\n", cfg.UI.ShowSources)
	fmt.Printf("  data dir:       %s\n", cfg.DataDir)
}

func newClient(cfg *config.Config) *rag.Client {
	return rag.NewClient(cfg.API.Base, cfg.API.Token).
		WithTopK(cfg.Chat.TopK).
		WithHistoryWindow(cfg.Chat.HistoryWindow).
		WithContextualize(cfg.Chat.Contextualize).
		WithTimeout(cfg.Timeout())
}
