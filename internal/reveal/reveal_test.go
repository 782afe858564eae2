// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// PACE TESTS
// =============================================================================

func TestPaceFor_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		wantDelay time.Duration
		wantStep  int
	}{
		{"small", 100, 15 * time.Millisecond, 1},
		{"step boundary 600", 600, 15 * time.Millisecond, 1},
		{"medium step", 601, 15 * time.Millisecond, 2},
		{"delay boundary 800", 800, 15 * time.Millisecond, 2},
		{"medium delay", 801, 8 * time.Millisecond, 2},
		{"large step", 1501, 8 * time.Millisecond, 3},
		{"delay boundary 2000", 2000, 8 * time.Millisecond, 3},
		{"large", 2001, 4 * time.Millisecond, 3},
		{"huge", 3000, 4 * time.Millisecond, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pace := PaceFor(tt.size)
			if pace.Delay != tt.wantDelay {
				t.Errorf("PaceFor(%d).Delay = %v, want %v", tt.size, pace.Delay, tt.wantDelay)
			}
			if pace.Step != tt.wantStep {
				t.Errorf("PaceFor(%d).Step = %d, want %d", tt.size, pace.Step, tt.wantStep)
			}
		})
	}
}

func TestPaceFor_MonotonicDelay(t *testing.T) {
	// Delay must never increase as content grows.
	prev := PaceFor(0).Delay
	for size := 0; size <= 5000; size += 50 {
		cur := PaceFor(size).Delay
		if cur > prev {
			t.Fatalf("Delay increased at size %d: %v > %v", size, cur, prev)
		}
		prev = cur
	}
}

// =============================================================================
// REVEAL STATE MACHINE TESTS
// =============================================================================

func TestReveal_Empty(t *testing.T) {
	r := NewFromHTML("")
	if !r.Done() {
		t.Error("Empty sequence should start done")
	}
	if r.Step() != 0 {
		t.Error("Step on a done machine should return 0")
	}
	if r.Revealed() != "" {
		t.Errorf("Revealed() = %q, want empty", r.Revealed())
	}
}

func TestReveal_TagsAtomic(t *testing.T) {
	r := NewFromHTML("<p>Hi</p>")

	// First step emits the whole opening tag in one tick.
	delay := r.Step()
	if r.Revealed() != "<p>" {
		t.Errorf("After first step Revealed() = %q, want %q", r.Revealed(), "<p>")
	}
	if delay != FrameDelay {
		t.Errorf("Tag step delay = %v, want frame delay %v", delay, FrameDelay)
	}
}

func TestReveal_PrefixInvariant(t *testing.T) {
	// At every step the revealed string must be a valid prefix of the input
	// built from whole tags and partial text in token order.
	input := "<p>Hello <b>world</b>, this is a <i>test</i></p>"
	r := NewFromHTML(input)

	for !r.Done() {
		r.Step()
		prefix := r.Revealed()
		if !strings.HasPrefix(input, prefix) {
			t.Fatalf("Revealed %q is not a prefix of input", prefix)
		}
		// A partially revealed tag would leave a dangling "<...".
		if open := strings.LastIndexByte(prefix, '<'); open >= 0 {
			rest := prefix[open:]
			if !strings.ContainsRune(rest, '>') && !strings.HasPrefix(input[open:], rest+">") {
				// Trailing "<" is only legal if the input itself has a
				// literal "<" there (unterminated-tag degradation).
				if strings.IndexByte(input[open:], '>') >= 0 {
					t.Fatalf("Tag partially revealed: %q", rest)
				}
			}
		}
	}

	if r.Revealed() != input {
		t.Errorf("Final Revealed() = %q, want full input", r.Revealed())
	}
}

func TestReveal_FinalEqualsInput(t *testing.T) {
	inputs := []string{
		"<p>Hi</p>",
		"no markup at all",
		"<ul><li>a</li><li>b</li></ul>",
		"<p>unclosed",
		"text with trailing <",
	}
	for _, input := range inputs {
		r := NewFromHTML(input)
		for !r.Done() {
			r.Step()
		}
		if r.Revealed() != input {
			t.Errorf("Final Revealed() = %q, want %q", r.Revealed(), input)
		}
	}
}

func TestReveal_LargeContentFastTier(t *testing.T) {
	// A 3000-char text-only answer must use the fastest delay tier and the
	// largest step tier, and terminate with the machine done.
	input := strings.Repeat("a", 3000)
	r := NewFromHTML(input)

	if r.Pace().Delay != 4*time.Millisecond {
		t.Errorf("Pace().Delay = %v, want 4ms for >2000 chars", r.Pace().Delay)
	}
	if r.Pace().Step != 3 {
		t.Errorf("Pace().Step = %d, want 3 for >1500 chars", r.Pace().Step)
	}

	steps := 0
	for !r.Done() {
		r.Step()
		steps++
		if steps > 3000 {
			t.Fatal("Reveal did not terminate")
		}
	}
	if steps != 1000 {
		t.Errorf("Expected 1000 steps (3000 chars / step 3), got %d", steps)
	}
	if r.Revealed() != input {
		t.Error("Final content mismatch")
	}
}

func TestReveal_TextStepSize(t *testing.T) {
	r := New([]Token{{Kind: KindText, Value: "abcdef"}})
	// Small content: one rune per step.
	r.Step()
	if r.Revealed() != "a" {
		t.Errorf("After one step Revealed() = %q, want %q", r.Revealed(), "a")
	}
	delay := r.Step()
	if r.Revealed() != "ab" {
		t.Errorf("After two steps Revealed() = %q, want %q", r.Revealed(), "ab")
	}
	if delay != 15*time.Millisecond {
		t.Errorf("Text step delay = %v, want smallest tier 15ms", delay)
	}
}

func TestReveal_UnicodeStepsByRune(t *testing.T) {
	r := New([]Token{{Kind: KindText, Value: "héllo"}})
	r.Step()
	if r.Revealed() != "h" {
		t.Errorf("First step = %q", r.Revealed())
	}
	r.Step()
	if r.Revealed() != "hé" {
		t.Errorf("Second step = %q, want intact multi-byte rune", r.Revealed())
	}
}

func TestReveal_StepReturnsZeroWhenDone(t *testing.T) {
	r := NewFromHTML("<br>")
	if delay := r.Step(); delay != 0 {
		t.Errorf("Final step should return 0, got %v", delay)
	}
	if !r.Done() {
		t.Error("Machine should be done after final token")
	}
	// Further steps are no-ops.
	if delay := r.Step(); delay != 0 {
		t.Errorf("Step after done should return 0, got %v", delay)
	}
	if r.Revealed() != "<br>" {
		t.Errorf("Revealed() changed after done: %q", r.Revealed())
	}
}

func TestReveal_Finish(t *testing.T) {
	input := "<p>Hello world</p>"
	r := NewFromHTML(input)
	r.Step() // partial progress
	r.Step()
	r.Finish()

	if !r.Done() {
		t.Error("Finish should complete the machine")
	}
	if r.Revealed() != input {
		t.Errorf("After Finish Revealed() = %q, want full input", r.Revealed())
	}
}
