// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for ragchat.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdExport
	CmdClear
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	APIBase  string
	Token    string
	DataDir  string
	NoSource bool

	// Command-specific
	Query  string
	Format string // export format: json or markdown

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `ragchat - terminal chat client for a RAG question answering backend

Ragchat talks to a retrieval augmented generation service and shows its
answers in the terminal, with the source documents each answer was
grounded on.

Usage:
  ragchat                     Start the chat TUI (default)
  ragchat ask "question"      Ask a single question and print the answer
  ragchat export [--format f] Write the chat history to a file (json or markdown)
  ragchat clear               Delete the stored conversation
  ragchat config              Show the effective configuration
  ragchat version             Show version information
  ragchat help                Show this help

Flags:
  --api-base URL   Backend base URL (default http://localhost:8000)
  --token TOKEN    Bearer token sent with every query
  --data-dir DIR   Directory for config, transcript and logs (default ~/.ragchat)
  --no-sources     Hide the source list under answers

Environment:
  RAGCHAT_API_BASE, RAGCHAT_TOKEN, RAGCHAT_DATA_DIR override the config file.
`

// Parse parses os.Args and returns the command and its arguments.
func Parse() (Command, *Args) {
	return parseFrom(os.Args[1:])
}

func parseFrom(raw []string) (Command, *Args) {
	args := &Args{Format: "json"}

	cmd := CmdTUI
	rest := make([]string, 0, len(raw))

	i := 0
	if len(raw) > 0 && !strings.HasPrefix(raw[0], "-") {
		switch raw[0] {
		case "ask":
			cmd = CmdAsk
		case "export":
			cmd = CmdExport
		case "clear":
			cmd = CmdClear
		case "config":
			cmd = CmdConfig
		case "version":
			cmd = CmdVersion
		case "help":
			cmd = CmdHelp
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", raw[0])
			PrintUsage()
			os.Exit(2)
		}
		i = 1
	}

	for ; i < len(raw); i++ {
		arg := raw[i]
		switch {
		case arg == "--api-base" && i+1 < len(raw):
			i++
			args.APIBase = raw[i]
		case strings.HasPrefix(arg, "--api-base="):
			args.APIBase = strings.TrimPrefix(arg, "--api-base=")
		case arg == "--token" && i+1 < len(raw):
			i++
			args.Token = raw[i]
		case strings.HasPrefix(arg, "--token="):
			args.Token = strings.TrimPrefix(arg, "--token=")
		case arg == "--data-dir" && i+1 < len(raw):
			i++
			args.DataDir = raw[i]
		case strings.HasPrefix(arg, "--data-dir="):
			args.DataDir = strings.TrimPrefix(arg, "--data-dir=")
		case arg == "--format" && i+1 < len(raw):
			i++
			args.Format = raw[i]
		case strings.HasPrefix(arg, "--format="):
			args.Format = strings.TrimPrefix(arg, "--format=")
		case arg == "--no-sources":
			args.NoSource = true
		case arg == "--help" || arg == "-h":
			cmd = CmdHelp
		case arg == "--version" || arg == "-v":
			cmd = CmdVersion
		default:
			rest = append(rest, arg)
		}
	}

	args.Raw = rest
	if cmd == CmdAsk && len(rest) > 0 {
		args.Query = strings.Join(rest, " ")
	}
	return cmd, args
}

// PrintUsage prints the top-level usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("ragchat %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
