// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sanitize

import (
	"strings"
	"testing"
)

// =============================================================================
// WHITELIST TESTS
// =============================================================================

func TestSanitize_ScriptDroppedWithContent(t *testing.T) {
	got := Sanitize("<p>Hi <script>bad()</script><b>there</b></p>")

	if !strings.Contains(got, "<p>") || !strings.Contains(got, "<b>there</b>") {
		t.Errorf("Whitelisted tags lost: %q", got)
	}
	if strings.Contains(got, "script") || strings.Contains(got, "bad()") {
		t.Errorf("Script tag or its content survived: %q", got)
	}
}

func TestSanitize_DisallowedTagsDroppedSilently(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bad   string
	}{
		{"iframe", `<p>x<iframe src="http://evil"></iframe></p>`, "iframe"},
		{"img", `<p><img src="x.png">text</p>`, "img"},
		{"form", `<form action="/steal"><p>y</p></form>`, "form"},
		{"style attr", `<p style="color:red">z</p>`, "style"},
		{"onclick", `<p onclick="pwn()">z</p>`, "onclick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if strings.Contains(got, tt.bad) {
				t.Errorf("Disallowed markup survived in %q", got)
			}
			// Dropped, not escaped into visible text.
			if strings.Contains(got, "&lt;"+tt.bad) {
				t.Errorf("Disallowed tag escaped instead of dropped: %q", got)
			}
		})
	}
}

func TestSanitize_EmptyInput(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitize_AllWhitelistedTagsSurvive(t *testing.T) {
	input := "<p>p</p><b>b</b><i>i</i><strong>s</strong><em>e</em>" +
		"<ol><li>1</li></ol><ul><li>2</li></ul><br/>" +
		"<code>c</code><pre>pre</pre><span>sp</span><div>d</div>"
	got := Sanitize(input)

	for _, tag := range []string{"<p>", "<b>", "<i>", "<strong>", "<em>", "<ol>", "<ul>", "<li>", "<code>", "<pre>", "<span>", "<div>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("Whitelisted tag %s missing from %q", tag, got)
		}
	}
}

// =============================================================================
// ANCHOR HARDENING TESTS
// =============================================================================

func TestSanitize_AnchorHardened(t *testing.T) {
	got := Sanitize(`<a href='http://x.com'>link</a>`)

	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("Missing target=_blank: %q", got)
	}
	if !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Errorf("Missing safe rel: %q", got)
	}
	if !strings.Contains(got, `href="http://x.com"`) {
		t.Errorf("href lost: %q", got)
	}
	if !strings.Contains(got, ">link</a>") {
		t.Errorf("Anchor text lost: %q", got)
	}
}

func TestSanitize_AnchorBackendAttrsOverridden(t *testing.T) {
	// Whatever target/rel the backend sent is replaced wholesale.
	got := Sanitize(`<a href="https://x.com" target="_self" rel="opener">x</a>`)

	if strings.Contains(got, "_self") || strings.Contains(got, `rel="opener"`) {
		t.Errorf("Backend target/rel survived: %q", got)
	}
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, `rel="noopener noreferrer"`) {
		t.Errorf("Forced attributes missing: %q", got)
	}
}

func TestSanitize_AnchorKeepsTitleAndClass(t *testing.T) {
	got := Sanitize(`<a href="https://x.com" title="Doc" class="src">x</a>`)

	if !strings.Contains(got, `title="Doc"`) {
		t.Errorf("title dropped: %q", got)
	}
	if !strings.Contains(got, `class="src"`) {
		t.Errorf("class dropped: %q", got)
	}
}

func TestSanitize_JavascriptHrefDropped(t *testing.T) {
	got := Sanitize(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "javascript") {
		t.Errorf("javascript: URL survived: %q", got)
	}
}

// =============================================================================
// IDEMPOTENCE AND ROBUSTNESS
// =============================================================================

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"<p>Hi <script>bad()</script><b>there</b></p>",
		`<a href='http://x.com'>link</a>`,
		`<a href="https://x.com" title="T" class="c" rel="nofollow">y</a>`,
		"<ul><li>one</li><li>two &amp; three</li></ul>",
		"plain text",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Not idempotent for %q:\n once: %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestSanitize_MalformedNeverPanics(t *testing.T) {
	inputs := []string{
		"<p>unclosed",
		"<<<>>>",
		"<a href=",
		strings.Repeat("<div>", 1000),
		"<p attr='unterminated",
		"\x00\x01binary<p>junk</p>",
	}
	for _, input := range inputs {
		// Success criterion is simply not panicking and returning something.
		_ = Sanitize(input)
	}
}
