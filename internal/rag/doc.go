// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rag implements the HTTP client for the document-backed answering
// service.
//
// The backend exposes one endpoint used here: POST {base}/query, taking the
// question, a retrieval depth, and a short plain-text window of recent
// conversation, and returning an HTML-bearing answer plus the document
// sources it drew from. Authentication is a static bearer token supplied by
// configuration.
//
// The client keeps one request in flight per Query call, retries transient
// server errors with exponential backoff, and maps non-2xx responses to
// *APIError values carrying the status and response body.
package rag
