// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for ragchat.
//
// Configuration is read from ~/.ragchat/config.toml when present, with
// environment variable overrides applied afterwards, and built-in defaults
// for everything else. A missing or unreadable config file is not an error.
//
// Environment overrides:
//   - RAGCHAT_API_BASE: backend base URL
//   - RAGCHAT_TOKEN:    bearer token for the backend
//   - RAGCHAT_DATA_DIR: directory for transcript and log files
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ragchat configuration.
type Config struct {
	// API holds backend connection settings.
	API APIConfig `toml:"api"`

	// Chat holds query shaping settings.
	Chat ChatConfig `toml:"chat"`

	// UI holds interface settings.
	UI UIConfig `toml:"ui"`

	// DataDir is the directory for the transcript and log files.
	// Default: ~/.ragchat
	DataDir string `toml:"data_dir"`
}

// APIConfig contains backend connection configuration.
type APIConfig struct {
	// Base is the backend base URL; /query is appended for queries.
	Base string `toml:"base"`
	// Token is the optional bearer token sent as Authorization.
	Token string `toml:"token"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig contains query shaping configuration.
type ChatConfig struct {
	// TopK is the number of documents the backend retrieves per query.
	TopK int `toml:"top_k"`
	// HistoryWindow is how many trailing messages accompany each query.
	HistoryWindow int `toml:"history_window"`
	// Contextualize asks the backend to rewrite the query using history.
	Contextualize bool `toml:"contextualize"`
}

// UIConfig contains interface configuration.
type UIConfig struct {
	// ShowSources renders the source list under answers that carry one.
	ShowSources bool `toml:"show_sources"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		API: APIConfig{
			Base:        "http://localhost:8000",
			TimeoutSecs: 120,
		},
		Chat: ChatConfig{
			TopK:          3,
			HistoryWindow: 6,
			Contextualize: true,
		},
		UI: UIConfig{
			ShowSources: true,
		},
		DataDir: filepath.Join(home, ".ragchat"),
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file (if any), applies environment overrides, and
// validates the result. It always returns a usable configuration.
func Load() *Config {
	cfg := Default()

	path := filepath.Join(cfg.DataDir, "config.toml")
	if data, err := os.ReadFile(path); err == nil {
		// Decode over defaults; unknown keys are ignored, a broken file
		// leaves the defaults standing.
		_, _ = toml.Decode(string(data), cfg)
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg
}

// LoadFrom is Load with an explicit file path, used by tests.
func LoadFrom(path string) *Config {
	cfg := Default()
	if data, err := os.ReadFile(path); err == nil {
		_, _ = toml.Decode(string(data), cfg)
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("RAGCHAT_API_BASE"); v != "" {
		c.API.Base = v
	}
	if v := os.Getenv("RAGCHAT_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("RAGCHAT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
}

// normalize clamps out-of-range values back to safe defaults.
func (c *Config) normalize() {
	c.API.Base = strings.TrimSuffix(strings.TrimSpace(c.API.Base), "/")
	if c.API.Base == "" {
		c.API.Base = "http://localhost:8000"
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = 120
	}
	if c.Chat.TopK <= 0 {
		c.Chat.TopK = 3
	}
	if c.Chat.HistoryWindow <= 0 {
		c.Chat.HistoryWindow = 6
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// TranscriptPath returns the path of the persisted transcript file.
func (c *Config) TranscriptPath() string {
	return filepath.Join(c.DataDir, "transcript.json")
}

// LogPath returns the path of the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "ragchat.log")
}
