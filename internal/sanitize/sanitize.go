// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jeranaias/ragchat-tui/internal/reveal"
)

// =============================================================================
// POLICY
// =============================================================================

// allowedTags is the fixed tag whitelist. Everything else is dropped.
var allowedTags = []string{
	"a", "b", "i", "strong", "em",
	"ol", "ul", "li", "br", "p",
	"code", "pre", "span", "div",
}

// policy is shared and immutable after construction; bluemonday policies are
// safe for concurrent use once built.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedTags...)
	p.AllowAttrs("title", "class").Globally()
	p.AllowAttrs("href", "title", "target", "rel", "class").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}

// =============================================================================
// SANITIZE
// =============================================================================

// Sanitize filters raw HTML to the whitelist and hardens anchors. It never
// fails: malformed input degrades, empty input yields an empty string, and
// the input is never mutated. Sanitizing already-sanitized output returns
// it unchanged.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	return hardenAnchors(policy.Sanitize(raw))
}

// =============================================================================
// ANCHOR HARDENING
// =============================================================================

// hardenAnchors rewrites every opening anchor tag that carries an href so it
// opens in a new browsing context without handing the opener or referrer to
// the target. Attributes are re-emitted in a canonical order, which makes
// the rewrite idempotent.
func hardenAnchors(html string) string {
	var sb strings.Builder
	for _, tok := range reveal.Tokenize(html) {
		if tok.Kind == reveal.KindTag && isOpeningAnchor(tok.Value) {
			sb.WriteString(rewriteAnchor(tok.Value))
			continue
		}
		sb.WriteString(tok.Value)
	}
	return sb.String()
}

func isOpeningAnchor(tag string) bool {
	inner := strings.TrimPrefix(tag, "<")
	if strings.HasPrefix(inner, "/") {
		return false
	}
	name := inner
	if i := strings.IndexAny(name, " \t\n>"); i >= 0 {
		name = name[:i]
	}
	return strings.EqualFold(name, "a")
}

// rewriteAnchor rebuilds an opening <a> tag. Anchors without an href are
// left structurally intact; anchors with one get target and rel forced.
func rewriteAnchor(tag string) string {
	attrs := parseAttrs(tag)

	href, hasHref := attrs["href"]
	if !hasHref {
		return tag
	}

	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(href)
	sb.WriteString(`"`)
	if title, ok := attrs["title"]; ok {
		sb.WriteString(` title="`)
		sb.WriteString(title)
		sb.WriteString(`"`)
	}
	if class, ok := attrs["class"]; ok {
		sb.WriteString(` class="`)
		sb.WriteString(class)
		sb.WriteString(`"`)
	}
	sb.WriteString(` target="_blank" rel="noopener noreferrer">`)
	return sb.String()
}

// parseAttrs extracts attribute name/value pairs from a tag token. Values
// are kept exactly as written (already entity-escaped by the policy) so a
// second pass reproduces the same output.
func parseAttrs(tag string) map[string]string {
	attrs := make(map[string]string)

	inner := strings.TrimSuffix(strings.TrimPrefix(tag, "<"), ">")
	inner = strings.TrimSuffix(inner, "/")
	// Skip the tag name.
	if i := strings.IndexAny(inner, " \t\n"); i >= 0 {
		inner = inner[i:]
	} else {
		return attrs
	}

	i := 0
	for i < len(inner) {
		// Skip whitespace.
		for i < len(inner) && (inner[i] == ' ' || inner[i] == '\t' || inner[i] == '\n') {
			i++
		}
		if i >= len(inner) {
			break
		}

		// Attribute name.
		start := i
		for i < len(inner) && inner[i] != '=' && inner[i] != ' ' && inner[i] != '\t' && inner[i] != '\n' {
			i++
		}
		name := strings.ToLower(inner[start:i])
		if name == "" {
			break
		}

		// Bare attribute (no value).
		if i >= len(inner) || inner[i] != '=' {
			attrs[name] = ""
			continue
		}
		i++ // consume '='

		// Quoted or unquoted value.
		if i < len(inner) && (inner[i] == '"' || inner[i] == '\'') {
			quote := inner[i]
			i++
			vstart := i
			for i < len(inner) && inner[i] != quote {
				i++
			}
			attrs[name] = inner[vstart:i]
			if i < len(inner) {
				i++ // closing quote
			}
		} else {
			vstart := i
			for i < len(inner) && inner[i] != ' ' && inner[i] != '\t' && inner[i] != '\n' {
				i++
			}
			attrs[name] = inner[vstart:i]
		}
	}
	return attrs
}
