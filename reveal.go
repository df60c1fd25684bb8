// Copyright 2024 Josh Deprez
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dialogue

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DefaultTypingInterval is the default time between characters appearing.
const DefaultTypingInterval = 20 * time.Millisecond

// ErrRevealInProgress is returned by Reveal.Start when the previous text is
// still being revealed. Cancel it first.
var ErrRevealInProgress = errors.New("reveal already in progress")

// RevealState enumerates the states of a Reveal.
type RevealState int

const (
	// Nothing has been revealed yet.
	RevealIdle RevealState = iota

	// Characters are being written to the display.
	RevealRevealing

	// Every character was written and done was called.
	RevealCompleted

	// Cancel was called while revealing. done was not called.
	RevealCancelled
)

func (s RevealState) String() string {
	switch s {
	case RevealIdle:
		return "Idle"
	case RevealRevealing:
		return "Revealing"
	case RevealCompleted:
		return "Completed"
	case RevealCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("(invalid RevealState %d)", int(s))
}

// Reveal writes text to a display one character at a time: the typewriter
// effect. A Reveal is reusable; Start may be called again once the previous
// text has completed or been cancelled.
type Reveal struct {
	sched    Scheduler
	display  TextDisplay
	interval time.Duration

	state  RevealState
	text   string
	bounds []int // byte offset of the end of each character
	shown  int
	timer  Handle
	done   func()
}

// NewReveal returns a Reveal that writes to display, waiting interval
// between characters. A non-positive interval uses DefaultTypingInterval.
func NewReveal(sched Scheduler, display TextDisplay, interval time.Duration) *Reveal {
	if interval <= 0 {
		interval = DefaultTypingInterval
	}
	return &Reveal{
		sched:    sched,
		display:  display,
		interval: interval,
	}
}

// State returns the current state.
func (r *Reveal) State() RevealState { return r.state }

// Revealing reports whether text is still being revealed.
func (r *Reveal) Revealing() bool { return r.state == RevealRevealing }

// Text returns the full text most recently passed to Start.
func (r *Reveal) Text() string { return r.text }

// Progress returns the number of characters shown so far, and the total
// number of characters in the text.
func (r *Reveal) Progress() (shown, total int) { return r.shown, len(r.bounds) }

// Start begins revealing text. The first character is shown immediately,
// and each subsequent character one interval later. done is called (if not
// nil) one interval after the last character is shown, unless the reveal
// is cancelled first. Empty text completes immediately.
func (r *Reveal) Start(text string, done func()) error {
	if r.state == RevealRevealing {
		return ErrRevealInProgress
	}
	r.text = text
	r.bounds = charBounds(text)
	r.shown = 0
	r.done = done
	r.state = RevealRevealing
	r.display.SetText("")
	r.step()
	return nil
}

// Cancel stops revealing. The text on the display is left as it is, and
// done is not called. Cancel reports whether a reveal was in progress.
func (r *Reveal) Cancel() bool {
	if r.state != RevealRevealing {
		return false
	}
	r.sched.Cancel(r.timer)
	r.timer = 0
	r.done = nil
	r.state = RevealCancelled
	return true
}

// step shows the next character, or finishes.
func (r *Reveal) step() {
	r.timer = 0
	if r.shown >= len(r.bounds) {
		r.finish()
		return
	}
	r.shown++
	r.display.SetText(r.text[:r.bounds[r.shown-1]])
	r.timer = r.sched.ScheduleAfter(r.interval, r.step)
}

func (r *Reveal) finish() {
	r.state = RevealCompleted
	done := r.done
	r.done = nil
	if done != nil {
		done()
	}
}

// charBounds splits s into characters, where a character is a base rune
// together with any combining marks that follow it.
func charBounds(s string) []int {
	var bounds []int
	for i := 0; i < len(s); {
		n := norm.NFC.NextBoundaryInString(s[i:], true)
		if n <= 0 {
			// Shouldn't happen with atEOF, but never loop forever.
			n = len(s) - i
		}
		i += n
		bounds = append(bounds, i)
	}
	return bounds
}
