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

// TextDisplay receives the text of the current line. It is written both
// incrementally (while revealing) and all at once (when a line is skipped).
type TextDisplay interface {
	SetText(text string)
}

// Display is the dialogue box.
type Display interface {
	TextDisplay

	// SetSpeaker sets the speaker label shown with the text.
	SetSpeaker(label string)

	// Show and Hide toggle the visibility of the dialogue box.
	Show()
	Hide()
}

// Camera is a camera that lines can cut to.
type Camera interface {
	Activate()
	Deactivate()
}

// Speaker is a character that can speak lines.
type Speaker interface {
	// DisplayName is used as the speaker label. If it is empty, the speaker
	// ID is used instead.
	DisplayName() string
}

// Animator is implemented by speakers that can play animations. Speakers
// that don't implement it have their animation triggers ignored.
type Animator interface {
	FireAnimationTrigger(trigger string)
}

// Locomotion controls player movement.
type Locomotion interface {
	// FreezeMovement is called when an interactive conversation starts.
	// There is no matching unfreeze: movement should resume once the
	// Controller reports the dialogue is no longer active.
	FreezeMovement()
}
