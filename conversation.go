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

import "time"

// DefaultHold is how long a monologue line stays on screen after it has
// been fully revealed, when the authored asset doesn't say.
const DefaultHold = 3 * time.Second

// Conversation is an authored, ordered set of lines. Conversations are
// read-only once loaded; the Controller never modifies one.
type Conversation struct {
	// Name identifies the conversation in logs and dumps. Optional.
	Name string

	// IsMonologue selects the advancement policy for the whole conversation.
	// Monologues advance on their own and do not freeze the player; other
	// conversations advance only when Advance is called.
	IsMonologue bool

	// Lines in the order they are played.
	Lines []Line
}

// Line represents a line of dialogue.
type Line struct {
	// The ID of the speaker. Should match a speaker registered with the
	// Controller, otherwise no label or animation cue is applied.
	SpeakerID string

	// The text to reveal.
	Text string

	// (Optional) ID of the camera to cut to for this line.
	CameraShotID string

	// (Optional) Name of the trigger to fire on the speaker's animator.
	AnimationTrigger string

	// How long the line is held after it has been revealed, before the
	// next line is played. Only used in monologues.
	DisplayDuration time.Duration
}

// QueuedLine is a line waiting in the playback queue. BelongsToMonologue is
// copied from the owning conversation when the line is enqueued.
type QueuedLine struct {
	Line
	BelongsToMonologue bool
}
