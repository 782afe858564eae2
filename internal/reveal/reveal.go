// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"strings"
	"time"
)

// =============================================================================
// REVEAL STATE MACHINE
// =============================================================================

// Reveal progressively reconstructs a prefix of a tokenized HTML string.
//
// The state is a token cursor, a rune cursor into the current text token,
// and the accumulated prefix. Step is the single transition function; the
// caller schedules the next tick using the delay it returns. Invariants:
//
//   - Revealed() is always the token-order concatenation of whole tag
//     tokens plus whole or partial text tokens (tags never split)
//   - once Done() reports true, Revealed() equals the full input
type Reveal struct {
	tokens []Token
	pace   Pace

	cursor   int // index of the current token
	offset   int // rune offset within the current text token
	revealed strings.Builder
	done     bool
}

// New creates a reveal sequence over a token slice, deriving the pace from
// its total text size. An empty sequence is already done.
func New(tokens []Token) *Reveal {
	r := &Reveal{
		tokens: tokens,
		pace:   PaceFor(TotalTextChars(tokens)),
	}
	if len(tokens) == 0 {
		r.done = true
	}
	return r
}

// NewFromHTML tokenizes html and creates a reveal sequence over it.
func NewFromHTML(html string) *Reveal {
	return New(Tokenize(html))
}

// Pace returns the timing policy derived for this sequence.
func (r *Reveal) Pace() Pace {
	return r.pace
}

// Revealed returns the currently revealed prefix.
func (r *Reveal) Revealed() string {
	return r.revealed.String()
}

// Done reports whether the entire sequence has been revealed.
func (r *Reveal) Done() bool {
	return r.done
}

// Step advances the machine by one tick and returns the delay until the
// next tick, or zero when the sequence is complete.
//
// A tag token is appended whole in a single step and the next tick runs at
// frame cadence; a text token is appended up to Pace.Step runes per step at
// the typing delay.
func (r *Reveal) Step() time.Duration {
	if r.done {
		return 0
	}

	tok := r.tokens[r.cursor]
	if tok.Kind == KindTag {
		r.revealed.WriteString(tok.Value)
		r.advanceToken()
		if r.done {
			return 0
		}
		return FrameDelay
	}

	runes := []rune(tok.Value)
	end := r.offset + r.pace.Step
	if end >= len(runes) {
		end = len(runes)
	}
	r.revealed.WriteString(string(runes[r.offset:end]))
	r.offset = end
	if r.offset >= len(runes) {
		r.advanceToken()
	}
	if r.done {
		return 0
	}
	return r.pace.Delay
}

// Finish reveals the remainder of the sequence immediately. Used when a
// reveal is superseded and the message must snap to its full content.
func (r *Reveal) Finish() {
	for !r.done {
		tok := r.tokens[r.cursor]
		if tok.Kind == KindTag {
			r.revealed.WriteString(tok.Value)
		} else {
			runes := []rune(tok.Value)
			r.revealed.WriteString(string(runes[r.offset:]))
		}
		r.advanceToken()
	}
}

// advanceToken moves to the next token and resets the rune cursor, marking
// the machine done at the end of the sequence.
func (r *Reveal) advanceToken() {
	r.cursor++
	r.offset = 0
	if r.cursor >= len(r.tokens) {
		r.done = true
	}
}
