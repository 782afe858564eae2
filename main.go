// ragchat - a terminal chat client for a RAG question answering backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/ragchat-tui/internal/cli"
	"github.com/jeranaias/ragchat-tui/internal/logging"
	"github.com/jeranaias/ragchat-tui/internal/rag"
	"github.com/jeranaias/ragchat-tui/internal/storage"
	"github.com/jeranaias/ragchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		exitOnError(cli.HandleAsk(args))
	case cli.CmdExport:
		exitOnError(cli.HandleExport(args))
	case cli.CmdClear:
		exitOnError(cli.HandleClear(args))
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// runTUI wires the config, backend client and transcript store into the
// chat view and runs the Bubble Tea program.
func runTUI(args *cli.Args) {
	cfg := cli.LoadConfig(args)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "could not create data directory %s: %v\n", cfg.DataDir, err)
		os.Exit(1)
	}

	closeLog := logging.Setup(cfg.LogPath())
	defer closeLog()
	log.Info().Str("api_base", cfg.API.Base).Msg("ragchat starting")

	client := rag.NewClient(cfg.API.Base, cfg.API.Token).
		WithTopK(cfg.Chat.TopK).
		WithHistoryWindow(cfg.Chat.HistoryWindow).
		WithContextualize(cfg.Chat.Contextualize).
		WithTimeout(cfg.Timeout())

	store := storage.NewTranscriptStore(cfg.TranscriptPath())

	m := chat.New(cfg, client, store)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui exited with error")
		fmt.Fprintf(os.Stderr, "ragchat: %v\n", err)
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "ragchat: %v\n", err)
		os.Exit(1)
	}
}
