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
	"container/heap"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle never refers to a
// scheduled callback, so it can be used to mean "nothing scheduled".
type Handle uint64

// Scheduler runs callbacks after a delay. Implementations must run
// callbacks on the same goroutine that drives the Controller.
type Scheduler interface {
	// ScheduleAfter arranges for fn to be called once d has elapsed.
	ScheduleAfter(d time.Duration, fn func()) Handle

	// Cancel prevents a callback from running. It reports whether the
	// callback was still pending.
	Cancel(h Handle) bool
}

var _ Scheduler = &TickScheduler{}

// TickScheduler is a Scheduler driven by explicit calls to Tick, typically
// once per frame. Time only passes inside Tick, which makes it fully
// deterministic.
//
// Callbacks scheduled while Tick is running callbacks are never run by the
// same Tick, even with a zero delay; they run on a later Tick. The zero
// value is ready to use.
type TickScheduler struct {
	now    time.Duration
	next   Handle
	timers timerHeap
	live   map[Handle]*timer
}

type timer struct {
	h   Handle
	due time.Duration
	fn  func()
}

// Now returns the amount of time that has passed through Tick.
func (s *TickScheduler) Now() time.Duration { return s.now }

// Pending returns the number of callbacks that have not yet run or been
// cancelled.
func (s *TickScheduler) Pending() int { return len(s.live) }

// ScheduleAfter schedules fn to run on the first Tick at which d has
// elapsed. Negative delays are treated as zero.
func (s *TickScheduler) ScheduleAfter(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	if s.live == nil {
		s.live = make(map[Handle]*timer)
	}
	s.next++
	t := &timer{h: s.next, due: s.now + d, fn: fn}
	s.live[t.h] = t
	heap.Push(&s.timers, t)
	return t.h
}

// Cancel cancels the callback. It returns false if the callback already
// ran, was already cancelled, or h is the zero Handle.
func (s *TickScheduler) Cancel(h Handle) bool {
	if _, found := s.live[h]; !found {
		return false
	}
	// The heap entry is discarded lazily.
	delete(s.live, h)
	return true
}

// Tick advances time by dt and runs the callbacks that have become due, in
// the order they are due (ties broken by scheduling order).
func (s *TickScheduler) Tick(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	// Gather the batch first, so that callbacks scheduled by callbacks
	// wait for the next tick.
	var batch []*timer
	for len(s.timers) > 0 && s.timers[0].due <= s.now {
		t := heap.Pop(&s.timers).(*timer)
		if _, found := s.live[t.h]; found {
			batch = append(batch, t)
		}
	}
	for _, t := range batch {
		// An earlier callback in the batch may have cancelled this one.
		if _, found := s.live[t.h]; !found {
			continue
		}
		delete(s.live, t.h)
		t.fn()
	}
}

// timerHeap implements heap.Interface ordered by due time, then handle.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].h < h[j].h
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) { *h = append(*h, x.(*timer)) }

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
