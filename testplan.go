// Copyright 2021 Josh Deprez
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TestPlan implements test plans. A test plan drives a Controller with a
// TickScheduler through a conversation, and checks what is shown along the
// way. Each step is one line of the plan, either a bare command or
// "type: contents":
//
//	typing: 20ms        time between characters (before anything else)
//	frame: 10ms         tick size used by run (default 10ms)
//	load: gate.dlg      conversation to play, relative to the plan
//	camera: gate        register a camera
//	speaker: Guard      register a speaker with an animator
//	speaker: Guard = Captain Ward
//	                    ... with a display name
//	prop: Statue        register a speaker with no animator
//	unregister: gate    remove cameras and speakers, space separated
//	start | advance | end
//	tick: 20ms          one tick
//	run: 2s             ticks of one frame until the time has passed
//	text: Hello         the displayed text
//	label: Guard        the speaker label
//	cameras: gate       the active cameras, space separated
//	anim: Guard Point   the next animation trigger fired
//	state: interactive  one of inactive, interactive, monologue
//	visible: true       whether the dialogue box is shown
//	frozen: 1           how many times movement was frozen
//	pending: 2          how many lines are queued
//	revealing: false    whether a line is being revealed
type TestPlan struct {
	Steps []TestStep
	Step  int

	// Dir is the directory that load paths are relative to.
	Dir string

	typing time.Duration
	frame  time.Duration

	conv    *Conversation
	sched   *TickScheduler
	ctrl    *Controller
	display *planDisplay
	frozen  int
	anims   []string
}

// LoadTestPlanFile is a convenient function for loading a test plan given a
// file path.
func LoadTestPlanFile(testPlanPath string) (*TestPlan, error) {
	tpf, err := os.Open(testPlanPath)
	if err != nil {
		return nil, fmt.Errorf("opening testplan file: %w", err)
	}
	defer tpf.Close()
	tp, err := ReadTestPlan(tpf)
	if err != nil {
		return nil, fmt.Errorf("reading testplan file: %w", err)
	}
	tp.Dir = filepath.Dir(testPlanPath)
	return tp, nil
}

// ReadTestPlan reads a testplan from an io.Reader into a TestPlan.
func ReadTestPlan(r io.Reader) (*TestPlan, error) {
	var tp TestPlan
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		txt := strings.TrimSpace(sc.Text())
		if txt == "" || strings.HasPrefix(txt, "#") {
			// Skip blanks and comments
			continue
		}
		if txt == "stop" {
			// Superfluous stop at end of file
			break
		}
		tok := strings.SplitN(txt, ":", 2)
		step := TestStep{Type: strings.TrimSpace(tok[0])}
		if len(tok) == 2 {
			step.Contents = strings.TrimSpace(tok[1])
		}
		if step.Type == "" {
			return nil, fmt.Errorf("malformed step %q", txt)
		}
		tp.Steps = append(tp.Steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &tp, nil
}

// TestStep is a step in a test plan.
type TestStep struct {
	Type     string
	Contents string
}

func (s TestStep) String() string {
	if s.Contents == "" {
		return s.Type
	}
	return s.Type + ": " + s.Contents
}

// Run performs every remaining step of the plan, stopping at the first
// step that fails. Any conversation still playing afterwards is ended.
func (p *TestPlan) Run() error {
	defer func() {
		if p.ctrl != nil {
			p.ctrl.EndConversation()
		}
	}()
	for p.Step < len(p.Steps) {
		step := p.Steps[p.Step]
		if err := p.do(step); err != nil {
			return fmt.Errorf("step %d (%v): %w", p.Step+1, step, err)
		}
		p.Step++
	}
	return nil
}

// Complete checks if the test plan was completed.
func (p *TestPlan) Complete() error {
	if p.Step != len(p.Steps) {
		return fmt.Errorf("on step %d %v", p.Step, p.Steps[p.Step])
	}
	if p.ctrl == nil {
		return errors.New("plan never used a controller")
	}
	return nil
}

// Controller returns the controller being driven, creating it if needed.
func (p *TestPlan) Controller() *Controller {
	if p.ctrl == nil {
		p.sched = new(TickScheduler)
		p.display = new(planDisplay)
		p.ctrl = NewController(p.sched, p.display,
			WithTypingInterval(p.typing),
			WithLocomotion(planLocomotion{p}),
		)
	}
	return p.ctrl
}

func (p *TestPlan) do(step TestStep) error {
	switch step.Type {
	case "typing":
		if p.ctrl != nil {
			return errors.New("typing must come before other steps")
		}
		d, err := time.ParseDuration(step.Contents)
		if err != nil {
			return err
		}
		p.typing = d
		return nil

	case "frame":
		d, err := time.ParseDuration(step.Contents)
		if err != nil {
			return err
		}
		if d <= 0 {
			return fmt.Errorf("frame %v must be positive", d)
		}
		p.frame = d
		return nil

	case "load":
		conv, err := LoadFile(filepath.Join(p.Dir, step.Contents), DefaultHold)
		if err != nil {
			return err
		}
		p.conv = conv
		return nil
	}

	c := p.Controller()
	switch step.Type {
	case "camera":
		c.RegisterCamera(step.Contents, new(planCamera))

	case "speaker", "prop":
		id, name, _ := strings.Cut(step.Contents, "=")
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if step.Type == "prop" {
			c.RegisterSpeaker(id, NamedSpeaker(name))
			break
		}
		c.RegisterSpeaker(id, &planSpeaker{p: p, id: id, name: name})

	case "unregister":
		ids := strings.Fields(step.Contents)
		c.Cameras().Unregister(ids...)
		c.Speakers().Unregister(ids...)

	case "start":
		if p.conv == nil {
			return errors.New("nothing loaded")
		}
		c.StartConversation(p.conv)

	case "advance":
		c.Advance()

	case "end":
		c.EndConversation()

	case "tick":
		d, err := time.ParseDuration(step.Contents)
		if err != nil {
			return err
		}
		p.sched.Tick(d)

	case "run":
		d, err := time.ParseDuration(step.Contents)
		if err != nil {
			return err
		}
		frame := p.frame
		if frame <= 0 {
			frame = 10 * time.Millisecond
		}
		for end := p.sched.Now() + d; p.sched.Now() < end; {
			p.sched.Tick(frame)
		}

	case "text":
		if got := p.display.text; got != step.Contents {
			return fmt.Errorf("text = %q, want %q", got, step.Contents)
		}

	case "label":
		if got := p.display.speaker; got != step.Contents {
			return fmt.Errorf("label = %q, want %q", got, step.Contents)
		}

	case "cameras":
		var active []string
		for id, cam := range c.Cameras().Contents() {
			if cam.(*planCamera).active {
				active = append(active, id)
			}
		}
		sort.Strings(active)
		want := strings.Fields(step.Contents)
		sort.Strings(want)
		if got, want := strings.Join(active, " "), strings.Join(want, " "); got != want {
			return fmt.Errorf("active cameras = [%s], want [%s]", got, want)
		}

	case "anim":
		if len(p.anims) == 0 {
			return fmt.Errorf("no animation triggered, want %q", step.Contents)
		}
		got := p.anims[0]
		p.anims = p.anims[1:]
		if got != step.Contents {
			return fmt.Errorf("animation = %q, want %q", got, step.Contents)
		}

	case "state":
		var got string
		switch s := c.State(); {
		case s.Interactive && !s.Active:
			return fmt.Errorf("state %+v is interactive but not active", s)
		case s.Interactive:
			got = "interactive"
		case s.Active:
			got = "monologue"
		default:
			got = "inactive"
		}
		if got != step.Contents {
			return fmt.Errorf("state = %s, want %s", got, step.Contents)
		}

	case "visible":
		return p.checkBool(p.display.visible, step)

	case "revealing":
		return p.checkBool(c.Revealing(), step)

	case "frozen":
		return p.checkInt(p.frozen, step)

	case "pending":
		return p.checkInt(len(c.Pending()), step)

	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}
	return nil
}

func (p *TestPlan) checkBool(got bool, step TestStep) error {
	want, err := strconv.ParseBool(step.Contents)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%s = %t, want %t", step.Type, got, want)
	}
	return nil
}

func (p *TestPlan) checkInt(got int, step TestStep) error {
	want, err := strconv.Atoi(step.Contents)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%s = %d, want %d", step.Type, got, want)
	}
	return nil
}

// planDisplay records what the Controller shows.
type planDisplay struct {
	text    string
	speaker string
	visible bool
}

func (d *planDisplay) SetText(text string)     { d.text = text }
func (d *planDisplay) SetSpeaker(label string) { d.speaker = label }
func (d *planDisplay) Show()                   { d.visible = true }
func (d *planDisplay) Hide()                   { d.visible = false }

type planCamera struct {
	active bool
}

func (c *planCamera) Activate()   { c.active = true }
func (c *planCamera) Deactivate() { c.active = false }

type planSpeaker struct {
	p        *TestPlan
	id, name string
}

func (s *planSpeaker) DisplayName() string { return s.name }

func (s *planSpeaker) FireAnimationTrigger(trigger string) {
	s.p.anims = append(s.p.anims, s.id+" "+trigger)
}

type planLocomotion struct{ p *TestPlan }

func (l planLocomotion) FreezeMovement() { l.p.frozen++ }
