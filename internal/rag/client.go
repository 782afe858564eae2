// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/reveal"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// Configuration constants for the query endpoint.
const (
	// DefaultTimeout is the default per-request timeout. Generation on the
	// backend can take minutes for cold models.
	DefaultTimeout = 120 * time.Second

	// DefaultMaxRetries is the retry budget for 5xx responses.
	DefaultMaxRetries = 3

	// MaxResponseSize bounds the response body read to keep a misbehaving
	// backend from exhausting memory.
	MaxResponseSize = 10 * 1024 * 1024

	// DefaultTopK is the retrieval depth when none is configured.
	DefaultTopK = 3

	// DefaultHistoryWindow is how many trailing messages accompany a query.
	DefaultHistoryWindow = 6
)

// sharedHTTPClient pools connections across queries.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// ErrEmptyQuery is returned when the question is blank after trimming.
var ErrEmptyQuery = errors.New("query is empty")

// =============================================================================
// WIRE TYPES
// =============================================================================

// HistoryMessage is one entry of the plain-text conversation window sent
// with a query.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest is the POST /query payload.
type QueryRequest struct {
	Q             string           `json:"q"`
	TopK          int              `json:"top_k"`
	History       []HistoryMessage `json:"history"`
	Contextualize bool             `json:"contextualize"`
}

// QueryResponse is the POST /query result. Answer is HTML; Sources lists
// the documents the answer drew from.
type QueryResponse struct {
	Answer  string         `json:"answer"`
	Sources []model.Source `json:"sources"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the RAG backend.
type Client struct {
	baseURL       string
	token         string
	topK          int
	historyWindow int
	contextualize bool
	maxRetries    int
	httpClient    *http.Client
}

// NewClient creates a client for the given base URL. The token may be
// empty, in which case no Authorization header is sent.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		token:         token,
		topK:          DefaultTopK,
		historyWindow: DefaultHistoryWindow,
		contextualize: true,
		maxRetries:    DefaultMaxRetries,
		httpClient:    sharedHTTPClient,
	}
}

// WithTopK sets the retrieval depth.
func (c *Client) WithTopK(topK int) *Client {
	if topK > 0 {
		c.topK = topK
	}
	return c
}

// WithHistoryWindow sets how many trailing messages accompany a query.
func (c *Client) WithHistoryWindow(n int) *Client {
	if n > 0 {
		c.historyWindow = n
	}
	return c
}

// WithContextualize toggles backend query rewriting from history.
func (c *Client) WithContextualize(enabled bool) *Client {
	c.contextualize = enabled
	return c
}

// WithTimeout sets the per-request timeout. It swaps in a dedicated
// http.Client so the shared pooled client keeps its defaults.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.httpClient = &http.Client{
			Transport: sharedHTTPClient.Transport,
			Timeout:   timeout,
		}
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// =============================================================================
// QUERY
// =============================================================================

// Query sends the question and a plain-text window of recent transcript to
// the backend and returns its answer. The transcript window has HTML
// stripped so the backend only ever sees text.
func (c *Client) Query(ctx context.Context, q string, transcript []model.Message) (*QueryResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	reqBody := QueryRequest{
		Q:             q,
		TopK:          c.topK,
		History:       historyPayload(transcript, c.historyWindow),
		Contextualize: c.contextualize,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, c.baseURL+"/query", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(data)),
		}
	}

	var result QueryResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debug().Str("q", util.TruncateRunes(q, 80)).
		Int("answer_len", len(result.Answer)).
		Int("sources", len(result.Sources)).Msg("query completed")
	return &result, nil
}

// doWithRetry POSTs the body, retrying 5xx responses and transport errors
// with exponential backoff (1s, 2s, 4s). 4xx responses return immediately:
// retrying a rejected request cannot succeed.
func (c *Client) doWithRetry(ctx context.Context, url string, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err == nil && resp.StatusCode < 500 {
			log.Debug().Int("status", resp.StatusCode).
				Dur("took", time.Since(start)).Msg("query request")
			return resp, nil
		}

		lastErr = err
		if resp != nil {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).
				Msg("query request failed, retrying")
			resp.Body.Close()
		}

		// No backoff after the last attempt; there is nothing left to wait
		// for.
		if attempt == c.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(1<<attempt) * time.Second):
		}
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// =============================================================================
// HISTORY PAYLOAD
// =============================================================================

// historyPayload converts the trailing window of the transcript into the
// wire history, stripping assistant HTML down to plain text. System
// messages are local UI notices and never leave the client.
func historyPayload(transcript []model.Message, window int) []HistoryMessage {
	if window <= 0 || len(transcript) == 0 {
		return []HistoryMessage{}
	}

	var recent []model.Message
	for _, msg := range transcript {
		if msg.Role == model.RoleSystem {
			continue
		}
		recent = append(recent, msg)
	}
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	history := make([]HistoryMessage, 0, len(recent))
	for _, msg := range recent {
		history = append(history, HistoryMessage{
			Role:    msg.Role.String(),
			Content: reveal.StripTags(msg.Content),
		})
	}
	return history
}
