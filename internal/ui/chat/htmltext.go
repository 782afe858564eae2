// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat HTML rendering.
//
// Answers arrive as a small whitelisted HTML subset. This file turns that
// subset into styled terminal text. It works on the same token stream the
// reveal engine uses, so a partially revealed answer renders exactly like
// the same prefix of the full answer.
package chat

import (
	"html"
	"strings"

	"github.com/jeranaias/ragchat-tui/internal/reveal"
	"github.com/jeranaias/ragchat-tui/internal/ui/styles"
)

// =============================================================================
// RENDERER
// =============================================================================

type htmlRenderer struct {
	theme *styles.Theme
	out   strings.Builder

	bold   int
	italic int
	code   int
	pre    int
	href   string
}

// renderHTML converts sanitized HTML into styled terminal text.
func renderHTML(theme *styles.Theme, raw string) string {
	r := &htmlRenderer{theme: theme}
	for _, tok := range reveal.Tokenize(raw) {
		switch tok.Kind {
		case reveal.KindTag:
			r.tag(tok.Value)
		case reveal.KindText:
			r.text(tok.Value)
		}
	}
	s := r.out.String()
	// Collapse runs of blank lines left by adjacent block tags.
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return strings.Trim(s, "\n")
}

func (r *htmlRenderer) tag(tag string) {
	name, attrs := splitTag(tag)
	switch name {
	case "b", "strong":
		r.bold++
	case "/b", "/strong":
		if r.bold > 0 {
			r.bold--
		}
	case "i", "em":
		r.italic++
	case "/i", "/em":
		if r.italic > 0 {
			r.italic--
		}
	case "code":
		r.code++
	case "/code":
		if r.code > 0 {
			r.code--
		}
	case "pre":
		r.pre++
		r.out.WriteString("\n")
	case "/pre":
		if r.pre > 0 {
			r.pre--
		}
		r.out.WriteString("\n")
	case "a":
		r.href = attrValue(attrs, "href")
	case "/a":
		if r.href != "" {
			r.out.WriteString(r.theme.LinkURL.Render(" (" + r.href + ")"))
			r.href = ""
		}
	case "br":
		r.out.WriteString("\n")
	case "p", "div", "ul", "ol":
		r.out.WriteString("\n")
	case "/p", "/div", "/ul", "/ol":
		r.out.WriteString("\n")
	case "li":
		r.out.WriteString("\n• ")
	case "/li":
		// next li or list close supplies the break
	}
}

func (r *htmlRenderer) text(s string) {
	s = html.UnescapeString(s)
	if r.pre == 0 {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	r.out.WriteString(r.style().Render(s))
}

// style resolves the active style for text. Innermost wins: code beats
// link beats bold/italic.
func (r *htmlRenderer) style() styleRenderer {
	switch {
	case r.pre > 0:
		return r.theme.Pre
	case r.code > 0:
		return r.theme.Code
	case r.href != "":
		return r.theme.Link
	case r.bold > 0 && r.italic > 0:
		return r.theme.Bold.Italic(true)
	case r.bold > 0:
		return r.theme.Bold
	case r.italic > 0:
		return r.theme.Italic
	default:
		return plainStyle{}
	}
}

// styleRenderer is the slice of lipgloss.Style the renderer needs. A plain
// passthrough satisfies it for unstyled text.
type styleRenderer interface {
	Render(...string) string
}

type plainStyle struct{}

func (plainStyle) Render(strs ...string) string {
	return strings.Join(strs, " ")
}

// =============================================================================
// TAG PARSING
// =============================================================================

// splitTag returns the lowercased element name ("/p" for closing tags) and
// the raw attribute text of a "<...>" token.
func splitTag(tag string) (string, string) {
	inner := strings.TrimSuffix(strings.TrimPrefix(tag, "<"), ">")
	inner = strings.TrimSpace(strings.TrimSuffix(inner, "/"))
	if inner == "" {
		return "", ""
	}
	closing := strings.HasPrefix(inner, "/")
	if closing {
		inner = strings.TrimSpace(inner[1:])
	}
	name := inner
	attrs := ""
	if i := strings.IndexAny(inner, " \t\n"); i >= 0 {
		name = inner[:i]
		attrs = strings.TrimSpace(inner[i+1:])
	}
	name = strings.ToLower(name)
	if closing {
		name = "/" + name
	}
	return name, attrs
}

// attrValue pulls a single attribute value out of raw attribute text by
// scanning name/value pairs in order. Byte offsets never come from a
// lowercased copy: lowercasing can change a rune's byte length and shift
// every offset after it.
func attrValue(attrs, key string) string {
	i := 0
	for i < len(attrs) {
		for i < len(attrs) && (attrs[i] == ' ' || attrs[i] == '\t' || attrs[i] == '\n') {
			i++
		}
		if i >= len(attrs) {
			break
		}

		start := i
		for i < len(attrs) && attrs[i] != '=' && attrs[i] != ' ' && attrs[i] != '\t' && attrs[i] != '\n' {
			i++
		}
		name := strings.ToLower(attrs[start:i])

		// Bare attribute (no value).
		if i >= len(attrs) || attrs[i] != '=' {
			if name == "" {
				break
			}
			continue
		}
		i++ // consume '='

		var value string
		if i < len(attrs) && attrs[i] == '"' {
			i++
			vstart := i
			for i < len(attrs) && attrs[i] != '"' {
				i++
			}
			value = attrs[vstart:i]
			if i < len(attrs) {
				i++ // closing quote
			}
		} else {
			vstart := i
			for i < len(attrs) && attrs[i] != ' ' && attrs[i] != '\t' && attrs[i] != '\n' {
				i++
			}
			value = attrs[vstart:i]
		}

		if name == key {
			return value
		}
	}
	return ""
}
