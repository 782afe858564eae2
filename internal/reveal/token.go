// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"html"
	"strings"
)

// =============================================================================
// TOKEN TYPE
// =============================================================================

// Kind distinguishes the two token classes produced by Tokenize.
type Kind int

const (
	// KindTag is a literal markup tag, from "<" through the first ">".
	KindTag Kind = iota
	// KindText is a run of character data between tags.
	KindText
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k == KindTag {
		return "tag"
	}
	return "text"
}

// Token is an atomic lexical unit of sanitized HTML. Concatenating the
// Values of a token sequence in order reproduces the input exactly.
type Token struct {
	Kind  Kind
	Value string
}

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize splits html into an ordered sequence of tag and text tokens.
//
// This is a lexical scanner, not a parser: a tag token runs from "<" through
// the first ">" with no attempt to validate nesting. An unterminated "<"
// turns the remainder of the input into one final text token, so truncated
// markup degrades to visible text instead of an error. Empty input yields
// zero tokens.
func Tokenize(html string) []Token {
	if html == "" {
		return nil
	}

	var tokens []Token
	for i := 0; i < len(html); {
		if html[i] == '<' {
			end := strings.IndexByte(html[i:], '>')
			if end < 0 {
				// No closing ">": the rest is literal trailing text.
				tokens = append(tokens, Token{Kind: KindText, Value: html[i:]})
				break
			}
			tokens = append(tokens, Token{Kind: KindTag, Value: html[i : i+end+1]})
			i += end + 1
			continue
		}

		next := strings.IndexByte(html[i:], '<')
		if next < 0 {
			tokens = append(tokens, Token{Kind: KindText, Value: html[i:]})
			break
		}
		tokens = append(tokens, Token{Kind: KindText, Value: html[i : i+next]})
		i += next
	}
	return tokens
}

// TotalTextChars sums the rune lengths of all text tokens. Tag tokens are
// excluded so pacing depends on visible content, not markup weight.
func TotalTextChars(tokens []Token) int {
	total := 0
	for _, tok := range tokens {
		if tok.Kind == KindText {
			total += len([]rune(tok.Value))
		}
	}
	return total
}

// =============================================================================
// PLAIN-TEXT PROJECTION
// =============================================================================

// blockBreakTags are tag names whose presence marks a line boundary in the
// plain-text projection.
var blockBreakTags = map[string]bool{
	"br": true, "/p": true, "/li": true, "/ul": true, "/ol": true,
	"/div": true, "/pre": true,
}

// StripTags reduces HTML to plain text: tags are dropped, block boundaries
// become newlines, list items gain a leading dash, and entities are
// unescaped. Used for the history payload sent to the backend and for
// transcript previews.
func StripTags(htmlStr string) string {
	var sb strings.Builder
	for _, tok := range Tokenize(htmlStr) {
		if tok.Kind == KindText {
			sb.WriteString(html.UnescapeString(tok.Value))
			continue
		}
		name := tagName(tok.Value)
		switch {
		case blockBreakTags[name]:
			sb.WriteString("\n")
		case name == "li":
			sb.WriteString("- ")
		}
	}

	// Collapse runs of blank lines left behind by adjacent block tags.
	lines := strings.Split(sb.String(), "\n")
	var out []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// tagName extracts the lowercased tag name from a tag token value,
// keeping a leading "/" for closing tags. "<a href=...>" -> "a",
// "</p>" -> "/p", "<br/>" -> "br".
func tagName(tag string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(tag, "<"), ">")
	inner = strings.TrimSpace(strings.TrimSuffix(inner, "/"))
	if i := strings.IndexAny(inner, " \t\n"); i >= 0 {
		inner = inner[:i]
	}
	return strings.ToLower(inner)
}
