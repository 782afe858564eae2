// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the chat transcript for ragchat.
//
// The whole transcript is serialized as one JSON document and rewritten
// atomically on every change, the moral equivalent of a browser's local
// storage key. Loading is fault-tolerant by design: a missing or corrupt
// file falls back to the seeded welcome transcript and never surfaces an
// error to the caller.
package storage
