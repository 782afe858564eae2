// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import "time"

// =============================================================================
// PACING
// =============================================================================

const (
	// InitialDelay is the pause before the first reveal step. It avoids a
	// flicker when the backend answers faster than the eye can register.
	InitialDelay = 350 * time.Millisecond

	// FrameDelay is the cadence for tag tokens. Tags carry no visible
	// characters, so they advance at the fastest cadence rather than the
	// typing delay.
	FrameDelay = 16 * time.Millisecond

	// CaretBlinkInterval is the blink cadence of the caret marker shown
	// while a reveal is in flight.
	CaretBlinkInterval = 500 * time.Millisecond
)

// Pace is the timing policy for one reveal sequence: the delay between text
// steps and the number of characters revealed per step.
type Pace struct {
	Delay time.Duration
	Step  int
}

// PaceFor derives the pace from the total visible text size of a sequence.
//
// Both tables are tiered so that larger answers reveal faster per tick and
// in bigger character steps, keeping total reveal time roughly bounded
// instead of growing linearly with answer length.
func PaceFor(totalTextChars int) Pace {
	var delay time.Duration
	switch {
	case totalTextChars > 2000:
		delay = 4 * time.Millisecond
	case totalTextChars > 800:
		delay = 8 * time.Millisecond
	default:
		delay = 15 * time.Millisecond
	}

	step := 1
	switch {
	case totalTextChars > 1500:
		step = 3
	case totalTextChars > 600:
		step = 2
	}

	return Pace{Delay: delay, Step: step}
}
