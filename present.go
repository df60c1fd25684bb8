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
	"github.com/sirupsen/logrus"
)

// Presenter puts one line at a time on screen: it cuts the camera, labels
// the speaker, fires the speaker's animation, and reveals the text.
type Presenter struct {
	cameras  *Registry[Camera]
	speakers *Registry[Speaker]
	display  Display
	reveal   *Reveal
	log      logrus.FieldLogger

	current Line
}

// NewPresenter returns a Presenter that draws on the given display and
// resolves cue IDs with the given registries.
func NewPresenter(cameras *Registry[Camera], speakers *Registry[Speaker], display Display, reveal *Reveal, log logrus.FieldLogger) *Presenter {
	if log == nil {
		log = discardLogger()
	}
	return &Presenter{
		cameras:  cameras,
		speakers: speakers,
		display:  display,
		reveal:   reveal,
		log:      log,
	}
}

// Present shows line. Any reveal still in progress is cancelled first.
// done is called once the text has been completely revealed, but not if
// the reveal is cut short by CompleteLine or Stop.
//
// Unknown camera and speaker IDs are not errors: the cue is skipped.
func (p *Presenter) Present(line Line, done func()) {
	p.current = line

	p.DeactivateCameras()
	if line.CameraShotID != "" {
		if cam, found := p.cameras.Lookup(line.CameraShotID); found {
			cam.Activate()
		} else {
			p.log.WithField("camera", line.CameraShotID).Debug("Unknown camera, skipping cut")
		}
	}

	if sp, found := p.speakers.Lookup(line.SpeakerID); found {
		label := sp.DisplayName()
		if label == "" {
			label = line.SpeakerID
		}
		p.display.SetSpeaker(label)
		if line.AnimationTrigger != "" {
			if an, ok := sp.(Animator); ok {
				an.FireAnimationTrigger(line.AnimationTrigger)
			} else {
				p.log.WithFields(logrus.Fields{
					"speaker": line.SpeakerID,
					"trigger": line.AnimationTrigger,
				}).Debug("Speaker has no animator, skipping trigger")
			}
		}
	} else {
		p.log.WithField("speaker", line.SpeakerID).Debug("Unknown speaker, skipping label")
	}

	p.reveal.Cancel()
	if err := p.reveal.Start(line.Text, done); err != nil {
		// Unreachable after Cancel.
		p.log.WithError(err).Error("Couldn't start reveal")
	}
}

// Current returns the line most recently presented.
func (p *Presenter) Current() Line { return p.current }

// Revealing reports whether the current line is still being revealed.
func (p *Presenter) Revealing() bool { return p.reveal.Revealing() }

// CompleteLine skips to the end of the reveal: the whole line is shown at
// once. It reports whether there was a reveal in progress to skip.
func (p *Presenter) CompleteLine() bool {
	if !p.reveal.Cancel() {
		return false
	}
	p.display.SetText(p.current.Text)
	return true
}

// Stop cancels any reveal in progress without writing the rest of the line.
func (p *Presenter) Stop() { p.reveal.Cancel() }

// DeactivateCameras deactivates every registered camera.
func (p *Presenter) DeactivateCameras() {
	p.cameras.Each(func(_ string, cam Camera) {
		cam.Deactivate()
	})
}
