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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestReadSettings(t *testing.T) {
	tests := []struct {
		name, doc string
		want      Settings
	}{
		{
			name: "empty",
			want: DefaultSettings(),
		},
		{
			name: "partial",
			doc:  "typing_interval: 30ms\n",
			want: Settings{
				TypingInterval: 30 * time.Millisecond,
				DefaultHold:    DefaultHold,
				FrameInterval:  DefaultFrameInterval,
			},
		},
		{
			name: "full",
			doc:  "typing_interval: 5ms\ndefault_hold: 1s\nframe_interval: 33ms\n",
			want: Settings{
				TypingInterval: 5 * time.Millisecond,
				DefaultHold:    time.Second,
				FrameInterval:  33 * time.Millisecond,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ReadSettings(strings.NewReader(test.doc))
			if err != nil {
				t.Fatalf("ReadSettings() = error %v", err)
			}
			if diff := cmp.Diff(got, test.want); diff != "" {
				t.Errorf("ReadSettings() diff (-got +want):\n%s", diff)
			}
		})
	}
}

func TestReadSettingsErrors(t *testing.T) {
	for _, doc := range []string{
		"typing_interval: 0s\n",
		"default_hold: -1s\n",
		"frame_interval: 0s\n",
		"typing_interval: fast\n",
	} {
		if _, err := ReadSettings(strings.NewReader(doc)); err == nil {
			t.Errorf("ReadSettings(%q) = nil error, want error", doc)
		}
	}
}

func TestLoadSettingsFileWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("typing_interval: 30ms\ndefault_hold: 1s\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvPrefix+"DEFAULT_HOLD", "4s")

	got, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile() = error %v", err)
	}
	want := Settings{
		TypingInterval: 30 * time.Millisecond,
		DefaultHold:    4 * time.Second,
		FrameInterval:  DefaultFrameInterval,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("LoadSettingsFile() diff (-got +want):\n%s", diff)
	}
}

func TestLoadSettingsFileEnvOnly(t *testing.T) {
	t.Setenv(EnvPrefix+"TYPING_INTERVAL", "0s")
	if _, err := LoadSettingsFile(""); err == nil {
		t.Error("LoadSettingsFile() = nil error, want error for zero typing interval")
	}
}

func TestLoadSettingsFileMissing(t *testing.T) {
	if _, err := LoadSettingsFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadSettingsFile(missing) = nil error, want error")
	}
}

func TestWithSettings(t *testing.T) {
	var s TickScheduler
	disp := new(recDisplay)
	settings := DefaultSettings()
	settings.TypingInterval = 50 * time.Millisecond
	ctrl := NewController(&s, disp, WithSettings(settings))
	ctrl.StartConversation(&Conversation{Lines: textLines("ab")})
	s.Tick(40 * time.Millisecond)
	if got, want := disp.last(), "a"; got != want {
		t.Errorf("at 40ms text = %q, want %q", got, want)
	}
	s.Tick(10 * time.Millisecond)
	if got, want := disp.last(), "ab"; got != want {
		t.Errorf("at 50ms text = %q, want %q", got, want)
	}
}
