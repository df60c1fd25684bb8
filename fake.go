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

// FakeDisplay implements Display with minimal, do-nothing methods. This is
// useful both for testing, and for satisfying the interface via embedding,
// e.g.:
//
//	type MyDisplay struct {
//	    FakeDisplay
//	}
//	// MyDisplay is only interested in SetText.
//	func (m *MyDisplay) SetText(text string) { ... }
//	// All the other Display methods provided by FakeDisplay.
type FakeDisplay struct{}

// SetText does nothing.
func (FakeDisplay) SetText(string) {}

// SetSpeaker does nothing.
func (FakeDisplay) SetSpeaker(string) {}

// Show does nothing.
func (FakeDisplay) Show() {}

// Hide does nothing.
func (FakeDisplay) Hide() {}

// FakeLocomotion implements Locomotion by doing nothing.
type FakeLocomotion struct{}

// FreezeMovement does nothing.
func (FakeLocomotion) FreezeMovement() {}

// NamedSpeaker is a Speaker with a fixed display name and no animations.
type NamedSpeaker string

// DisplayName returns the name.
func (s NamedSpeaker) DisplayName() string { return string(s) }
