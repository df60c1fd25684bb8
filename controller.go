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

// Package dialogue plays conversations: it sequences lines of dialogue or
// inner monologue, cuts cameras and fires animations for each line, reveals
// text with a typewriter effect, and advances either when the player asks
// (interactive dialogue) or by itself (monologue).
package dialogue // import "github.com/DrJosh9000/dialogue"

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the published state of the Controller. Other systems (player
// movement, menus) use it to gate their own input handling.
type State struct {
	// Active is true while any conversation is playing.
	Active bool

	// Interactive is true while a conversation that is not a monologue is
	// playing. Interactive implies Active.
	Interactive bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocomotion sets the collaborator that freezes player movement when
// an interactive conversation starts.
func WithLocomotion(l Locomotion) Option {
	return func(c *Controller) { c.locomotion = l }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// WithSettings sets the typing interval from s.
func WithSettings(s Settings) Option {
	return func(c *Controller) { c.typingInterval = s.TypingInterval }
}

// WithTypingInterval sets the time between characters appearing.
func WithTypingInterval(d time.Duration) Option {
	return func(c *Controller) { c.typingInterval = d }
}

// Controller plays one conversation at a time.
//
// Controller is not safe for concurrent use: every method, and every
// callback scheduled on its Scheduler, must run on the same goroutine. Loop
// provides a goroutine-safe way to drive a Controller in real time.
type Controller struct {
	sched      Scheduler
	display    Display
	locomotion Locomotion
	log        logrus.FieldLogger

	typingInterval time.Duration

	cameras   *Registry[Camera]
	speakers  *Registry[Speaker]
	presenter *Presenter

	queue     Queue
	state     State
	monologue bool
	name      string
	hold      Handle

	subs    map[int]func(State)
	nextSub int
}

// NewController returns a Controller that schedules its timers on sched and
// draws on display. Cameras and speakers are registered afterwards, while
// the scene is being built.
func NewController(sched Scheduler, display Display, opts ...Option) *Controller {
	c := &Controller{
		sched:          sched,
		display:        display,
		locomotion:     FakeLocomotion{},
		typingInterval: DefaultTypingInterval,
		cameras:        NewRegistry[Camera](),
		speakers:       NewRegistry[Speaker](),
		subs:           make(map[int]func(State)),
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = discardLogger()
	}
	reveal := NewReveal(sched, display, c.typingInterval)
	c.presenter = NewPresenter(c.cameras, c.speakers, display, reveal, c.log)
	return c
}

// RegisterCamera makes a camera available to lines under id.
func (c *Controller) RegisterCamera(id string, cam Camera) { c.cameras.Register(id, cam) }

// RegisterSpeaker makes a speaker available to lines under id.
func (c *Controller) RegisterSpeaker(id string, sp Speaker) { c.speakers.Register(id, sp) }

// Cameras returns the camera registry.
func (c *Controller) Cameras() *Registry[Camera] { return c.cameras }

// Speakers returns the speaker registry.
func (c *Controller) Speakers() *Registry[Speaker] { return c.speakers }

// BeginScene ends any conversation, then forgets every registered camera
// and speaker, ready for the next scene to register its own.
func (c *Controller) BeginScene() {
	c.EndConversation()
	c.cameras.Clear()
	c.speakers.Clear()
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Subscribe registers f to be called whenever the state changes. It
// returns a function that unregisters f.
func (c *Controller) Subscribe(f func(State)) (unsubscribe func()) {
	id := c.nextSub
	c.nextSub++
	c.subs[id] = f
	return func() { delete(c.subs, id) }
}

// Monologue reports whether the active conversation is a monologue.
func (c *Controller) Monologue() bool { return c.state.Active && c.monologue }

// Current returns the line most recently presented.
func (c *Controller) Current() Line { return c.presenter.Current() }

// Revealing reports whether the current line is still being revealed.
func (c *Controller) Revealing() bool { return c.presenter.Revealing() }

// Pending returns the lines still waiting to be played.
func (c *Controller) Pending() []QueuedLine { return c.queue.Lines() }

// StartConversation starts playing conv.
//
// If a conversation is already playing, it is abandoned: its reveal and
// timers are cancelled and its remaining lines are discarded before conv
// starts.
func (c *Controller) StartConversation(conv *Conversation) {
	log := c.log.WithFields(logrus.Fields{
		"conversation": conv.Name,
		"monologue":    conv.IsMonologue,
		"lines":        len(conv.Lines),
	})
	if c.state.Active {
		log.WithField("previous", c.name).Debug("Conversation already playing, restarting")
		c.stopPlayback()
	}
	log.Debug("Starting conversation")

	c.name = conv.Name
	c.monologue = conv.IsMonologue
	c.queue.Load(conv)
	c.setState(State{Active: true, Interactive: !conv.IsMonologue})
	if !conv.IsMonologue {
		c.locomotion.FreezeMovement()
	}
	c.display.Show()

	if conv.IsMonologue {
		c.driveMonologue()
		return
	}
	c.presentNext()
}

// Advance is the player asking to move on. If the current line is still
// being revealed, the rest of it is shown at once. Otherwise the next line
// is presented, or the conversation ends if there are no more lines.
//
// Advance does nothing if no conversation is playing, or if the
// conversation is a monologue.
func (c *Controller) Advance() {
	if !c.state.Active {
		return
	}
	if c.monologue {
		c.log.WithField("conversation", c.name).Debug("Ignoring advance during monologue")
		return
	}
	if c.presenter.CompleteLine() {
		return
	}
	c.presentNext()
}

// EndConversation stops playback, hides the dialogue box, and deactivates
// every registered camera. It is safe to call at any time.
func (c *Controller) EndConversation() {
	if c.state.Active {
		c.log.WithField("conversation", c.name).Debug("Ending conversation")
	}
	c.stopPlayback()
	c.display.Hide()
	c.presenter.DeactivateCameras()
	c.name = ""
	c.monologue = false
	// Publish last, so subscribers see the finished teardown.
	c.setState(State{})
}

// presentNext presents the next line for interactive playback.
func (c *Controller) presentNext() {
	next, ok := c.queue.Pop()
	if !ok {
		c.EndConversation()
		return
	}
	c.presenter.Present(next.Line, nil)
}

// driveMonologue presents the next line, waits for it to be revealed, then
// waits for it to be held, then repeats.
func (c *Controller) driveMonologue() {
	next, ok := c.queue.Pop()
	if !ok {
		c.EndConversation()
		return
	}
	c.presenter.Present(next.Line, func() {
		c.hold = c.sched.ScheduleAfter(next.DisplayDuration, func() {
			c.hold = 0
			c.driveMonologue()
		})
	})
}

// stopPlayback cancels the reveal and any hold timer, and empties the queue.
func (c *Controller) stopPlayback() {
	c.presenter.Stop()
	if c.hold != 0 {
		c.sched.Cancel(c.hold)
		c.hold = 0
	}
	c.queue.Clear()
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.state = s
	for _, id := range c.subIDs() {
		if c.state != s {
			// A subscriber changed the state again, and that change has
			// already been published to everyone.
			return
		}
		if f, ok := c.subs[id]; ok {
			f(s)
		}
	}
}

// subIDs returns subscriber IDs in subscription order.
func (c *Controller) subIDs() []int {
	ids := make([]int, 0, len(c.subs))
	for id := 0; id < c.nextSub; id++ {
		if _, ok := c.subs[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
