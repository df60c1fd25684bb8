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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// textRecorder records every SetText.
type textRecorder struct {
	writes []string
}

func (r *textRecorder) SetText(text string) { r.writes = append(r.writes, text) }

func (r *textRecorder) last() string {
	if len(r.writes) == 0 {
		return ""
	}
	return r.writes[len(r.writes)-1]
}

func TestRevealProgressive(t *testing.T) {
	var s TickScheduler
	var disp textRecorder
	r := NewReveal(&s, &disp, 20*time.Millisecond)
	if got, want := r.State(), RevealIdle; got != want {
		t.Errorf("r.State() = %v, want %v", got, want)
	}

	done := 0
	if err := r.Start("Hi!", func() { done++ }); err != nil {
		t.Fatalf("r.Start() = %v", err)
	}
	if got, want := disp.last(), "H"; got != want {
		t.Errorf("after Start, text = %q, want %q", got, want)
	}
	for i := 0; i < 5; i++ {
		s.Tick(10 * time.Millisecond)
	}
	if got, want := r.State(), RevealRevealing; got != want {
		t.Errorf("at 50ms r.State() = %v, want %v", got, want)
	}
	if shown, total := r.Progress(); shown != 3 || total != 3 {
		t.Errorf("r.Progress() = (%d, %d), want (3, 3)", shown, total)
	}
	if done != 0 {
		t.Errorf("done called %d times before the reveal finished", done)
	}
	s.Tick(10 * time.Millisecond)
	if got, want := r.State(), RevealCompleted; got != want {
		t.Errorf("at 60ms r.State() = %v, want %v", got, want)
	}
	if done != 1 {
		t.Errorf("done called %d times, want 1", done)
	}
	if diff := cmp.Diff(disp.writes, []string{"", "H", "Hi", "Hi!"}); diff != "" {
		t.Errorf("writes diff (-got +want):\n%s", diff)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("s.Pending() = %d, want 0", got)
	}
}

func TestRevealCancel(t *testing.T) {
	var s TickScheduler
	var disp textRecorder
	r := NewReveal(&s, &disp, 20*time.Millisecond)
	done := false
	if err := r.Start("Hello", func() { done = true }); err != nil {
		t.Fatalf("r.Start() = %v", err)
	}
	s.Tick(20 * time.Millisecond)
	if !r.Cancel() {
		t.Errorf("r.Cancel() = false, want true")
	}
	if r.Cancel() {
		t.Errorf("second r.Cancel() = true, want false")
	}
	s.Tick(time.Second)
	if done {
		t.Error("done called after Cancel")
	}
	if got, want := disp.last(), "He"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if got, want := r.State(), RevealCancelled; got != want {
		t.Errorf("r.State() = %v, want %v", got, want)
	}

	// Reusable after cancelling.
	if err := r.Start("Bye", nil); err != nil {
		t.Errorf("r.Start() after Cancel = %v", err)
	}
}

func TestRevealInProgress(t *testing.T) {
	var s TickScheduler
	var disp textRecorder
	r := NewReveal(&s, &disp, 0)
	if err := r.Start("Hello", nil); err != nil {
		t.Fatalf("r.Start() = %v", err)
	}
	if err := r.Start("Again", nil); !errors.Is(err, ErrRevealInProgress) {
		t.Errorf("second r.Start() = %v, want %v", err, ErrRevealInProgress)
	}
	if got, want := r.Text(), "Hello"; got != want {
		t.Errorf("r.Text() = %q, want %q", got, want)
	}
	// Only one character timer at a time.
	if got := s.Pending(); got != 1 {
		t.Errorf("s.Pending() = %d, want 1", got)
	}
}

func TestRevealEmpty(t *testing.T) {
	var s TickScheduler
	var disp textRecorder
	r := NewReveal(&s, &disp, 20*time.Millisecond)
	done := false
	if err := r.Start("", func() { done = true }); err != nil {
		t.Fatalf("r.Start() = %v", err)
	}
	if !done {
		t.Error("done not called synchronously for empty text")
	}
	if got, want := r.State(), RevealCompleted; got != want {
		t.Errorf("r.State() = %v, want %v", got, want)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("s.Pending() = %d, want 0", got)
	}
}

func TestRevealCombiningMarks(t *testing.T) {
	var s TickScheduler
	var disp textRecorder
	r := NewReveal(&s, &disp, 20*time.Millisecond)
	// e + COMBINING ACUTE ACCENT, then a.
	if err := r.Start("éa", nil); err != nil {
		t.Fatalf("r.Start() = %v", err)
	}
	s.Tick(20 * time.Millisecond)
	if diff := cmp.Diff(disp.writes, []string{"", "é", "éa"}); diff != "" {
		t.Errorf("writes diff (-got +want):\n%s", diff)
	}
	if shown, total := r.Progress(); shown != 2 || total != 2 {
		t.Errorf("r.Progress() = (%d, %d), want (2, 2)", shown, total)
	}
}

func TestRevealStateString(t *testing.T) {
	tests := map[RevealState]string{
		RevealIdle:      "Idle",
		RevealRevealing: "Revealing",
		RevealCompleted: "Completed",
		RevealCancelled: "Cancelled",
		RevealState(42): "(invalid RevealState 42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("RevealState(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
