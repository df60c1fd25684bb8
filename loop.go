// Copyright 2023 Josh Deprez
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
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopStopped is returned when a message is posted to a Loop that is not
// running.
var ErrLoopStopped = errors.New("loop not running")

// LoopState enumerates the different states that Loop can be in.
type LoopState int32

const (
	// Run has not been called, or has returned.
	LoopStateStopped LoopState = iota

	// Run is ticking the scheduler and handling messages.
	LoopStateRunning
)

func (s LoopState) String() string {
	switch s {
	case LoopStateStopped:
		return "Stopped"
	case LoopStateRunning:
		return "Running"
	}
	return fmt.Sprintf("(invalid LoopState %d)", int32(s))
}

// LoopStateMismatchErr is returned when Loop is told to change state, but
// this requires it to be in a different state than the state it is in.
type LoopStateMismatchErr struct {
	// The loop was in state Got, but we wanted it to be in state Want in
	// order to change it to state Next.
	Got, Want, Next LoopState
}

func (e LoopStateMismatchErr) Error() string {
	return fmt.Sprintf("loop is %v, so cannot transition from %v to %v", e.Got, e.Want, e.Next)
}

// Loop plays conversations in real time. Run owns the Controller and the
// TickScheduler: it ticks the scheduler with the wall-clock time elapsed
// between frames, and applies StartConversation, Advance and
// EndConversation requests posted from other goroutines (e.g. input
// handlers) between ticks. Everything the Controller does therefore happens
// on the goroutine calling Run.
//
// At most one Advance takes effect per frame. Extra advances posted within
// a frame wait for the following frames, and are dropped when a
// conversation is started or ended.
type Loop struct {
	state atomic.Int32
	ctrl  *Controller
	sched *TickScheduler
	msgCh chan loopMsg

	// mu is held for reading while posting, and for writing while
	// stopping, so every message accepted by post is applied by Run.
	mu       sync.RWMutex
	stopping chan struct{}

	// Only used by the goroutine calling Run.
	advanced bool
	deferred int
}

// NewLoop returns a new Loop. ctrl must have been created with sched as its
// Scheduler.
func NewLoop(ctrl *Controller, sched *TickScheduler) *Loop {
	return &Loop{
		ctrl:  ctrl,
		sched: sched,
		// Buffered so that a burst of input doesn't block the poster while
		// the loop is busy with a tick.
		msgCh: make(chan loopMsg, 16),
	}
}

// State returns the current state.
func (l *Loop) State() LoopState {
	return LoopState(l.state.Load())
}

func (l *Loop) stateTransition(old, new LoopState) error {
	if !l.state.CompareAndSwap(int32(old), int32(new)) {
		return LoopStateMismatchErr{
			Got:  l.State(),
			Want: old,
			Next: new,
		}
	}
	return nil
}

// Run ticks the scheduler every frame until ctx is done. A non-positive
// frame uses DefaultFrameInterval. Messages posted before Run returns are
// all applied, then any conversation still playing is ended. Run returns
// ctx.Err(), or an error if the loop is already running.
func (l *Loop) Run(ctx context.Context, frame time.Duration) error {
	l.mu.Lock()
	err := l.stateTransition(LoopStateStopped, LoopStateRunning)
	if err == nil {
		l.stopping = make(chan struct{})
		l.advanced, l.deferred = false, 0
	}
	l.mu.Unlock()
	if err != nil {
		return err
	}
	if frame <= 0 {
		frame = DefaultFrameInterval
	}

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			for _, msg := range l.stop() {
				msg.apply(l.ctrl)
			}
			l.ctrl.EndConversation()
			return ctx.Err()
		case msg := <-l.msgCh:
			l.handle(msg)
		case now := <-ticker.C:
			l.sched.Tick(now.Sub(last))
			last = now
			l.advanced = false
			if l.deferred > 0 {
				l.deferred--
				l.advanced = true
				l.ctrl.Advance()
			}
		}
	}
}

// handle applies a message, holding back advances beyond the first in a
// frame.
func (l *Loop) handle(msg loopMsg) {
	switch msg.(type) {
	case advanceMsg:
		if l.advanced {
			l.deferred++
			return
		}
		l.advanced = true
	case startMsg, endMsg:
		l.deferred = 0
	}
	msg.apply(l.ctrl)
}

// stop marks the loop stopped and returns the messages that were posted
// but not yet applied.
func (l *Loop) stop() []loopMsg {
	// Wake posters waiting for buffer space, so they release mu.
	close(l.stopping)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Store(int32(LoopStateStopped))
	var msgs []loopMsg
	for {
		select {
		case msg := <-l.msgCh:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func (l *Loop) post(msg loopMsg) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.State() != LoopStateRunning {
		return ErrLoopStopped
	}
	select {
	case l.msgCh <- msg:
		return nil
	case <-l.stopping:
		return ErrLoopStopped
	}
}

// StartConversation asks the loop to start playing conv.
func (l *Loop) StartConversation(conv *Conversation) error {
	return l.post(startMsg{conv})
}

// Advance asks the loop to advance the conversation (see
// Controller.Advance).
func (l *Loop) Advance() error {
	return l.post(advanceMsg{})
}

// EndConversation asks the loop to end the conversation.
func (l *Loop) EndConversation() error {
	return l.post(endMsg{})
}

// Do asks the loop to call f with the Controller, on the loop goroutine.
// This is the safe way to read Controller state from elsewhere.
func (l *Loop) Do(f func(*Controller)) error {
	return l.post(funcMsg{f})
}

// --- Loop messages --- \\

// Loop works by waiting on a channel. The message types are below.
type loopMsg interface {
	apply(*Controller)
}

// Sent on the channel when StartConversation is called.
type startMsg struct {
	conv *Conversation
}

func (m startMsg) apply(c *Controller) { c.StartConversation(m.conv) }

// Sent on the channel when Advance is called.
type advanceMsg struct{}

func (advanceMsg) apply(c *Controller) { c.Advance() }

// Sent on the channel when EndConversation is called.
type endMsg struct{}

func (endMsg) apply(c *Controller) { c.EndConversation() }

// Sent on the channel when Do is called.
type funcMsg struct {
	f func(*Controller)
}

func (m funcMsg) apply(c *Controller) { m.f(c) }
