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
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
)

var gateConversation = &Conversation{
	Name: "gate",
	Lines: []Line{
		{SpeakerID: "Guard", Text: "Halt!", CameraShotID: "gate_closeup", AnimationTrigger: "Point", DisplayDuration: DefaultHold},
		{SpeakerID: "Player", Text: "Just a traveller.", CameraShotID: "gate_wide", DisplayDuration: DefaultHold},
		{SpeakerID: "Guard", Text: "Pass.", CameraShotID: "tower", AnimationTrigger: "Wave", DisplayDuration: DefaultHold},
	},
}

func TestLoadFileFormats(t *testing.T) {
	for _, path := range []string{"testdata/gate.dlg", "testdata/gate.dlgc"} {
		conv, err := LoadFile(path, DefaultHold)
		if err != nil {
			t.Fatalf("LoadFile(%q) = error %v", path, err)
		}
		if diff := cmp.Diff(conv, gateConversation); diff != "" {
			t.Errorf("LoadFile(%q) diff (-got +want):\n%s", path, diff)
		}
	}
}

func TestLoadFileYAML(t *testing.T) {
	conv, err := LoadFile("testdata/thoughts.yaml", time.Second)
	if err != nil {
		t.Fatalf("LoadFile() = error %v", err)
	}
	want := &Conversation{
		Name:        "thoughts",
		IsMonologue: true,
		Lines: []Line{
			{SpeakerID: "Player", Text: "ab", DisplayDuration: 100 * time.Millisecond},
			{SpeakerID: "Player", Text: "cd", CameraShotID: "window", DisplayDuration: 50 * time.Millisecond},
		},
	}
	if diff := cmp.Diff(conv, want); diff != "" {
		t.Errorf("LoadFile() diff (-got +want):\n%s", diff)
	}
}

func TestLoadFSNamesAfterFile(t *testing.T) {
	fsys := fstest.MapFS{
		"scenes/market.yml": {Data: []byte("lines:\n  - speaker: Vendor\n    text: Apples!\n")},
	}
	conv, err := LoadFS(fsys, "scenes/market.yml", 2*time.Second)
	if err != nil {
		t.Fatalf("LoadFS() = error %v", err)
	}
	want := &Conversation{
		Name:  "market",
		Lines: []Line{{SpeakerID: "Vendor", Text: "Apples!", DisplayDuration: 2 * time.Second}},
	}
	if diff := cmp.Diff(conv, want); diff != "" {
		t.Errorf("LoadFS() diff (-got +want):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	for _, path := range []string{"testdata/gate.txt", "testdata/missing.dlg"} {
		if _, err := LoadFile(path, DefaultHold); err == nil {
			t.Errorf("LoadFile(%q) = nil error, want error", path)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.yaml":    FormatYAML,
		"a.YML":     FormatYAML,
		"dir/b.dlg": FormatScript,
		"c.dlgc":    FormatCompiled,
	}
	for path, want := range tests {
		got, err := FormatForPath(path)
		if err != nil {
			t.Errorf("FormatForPath(%q) = error %v", path, err)
			continue
		}
		if got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
	if _, err := FormatForPath("noext"); err == nil {
		t.Error(`FormatForPath("noext") = nil error`)
	}
}

func TestReadYAMLDurations(t *testing.T) {
	const doc = `
lines:
  - text: a
  - text: b
    duration: 1.5
  - text: c
    duration: 250ms
`
	conv, err := ReadConversation(strings.NewReader(doc), FormatYAML, DefaultHold)
	if err != nil {
		t.Fatalf("ReadConversation() = error %v", err)
	}
	var got []time.Duration
	for _, l := range conv.Lines {
		got = append(got, l.DisplayDuration)
	}
	want := []time.Duration{DefaultHold, 1500 * time.Millisecond, 250 * time.Millisecond}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("durations diff (-got +want):\n%s", diff)
	}
}

func TestReadYAMLErrors(t *testing.T) {
	tests := []string{
		"lines:\n  - text: a\n    duration: -1s\n",
		"lines:\n  - text: a\n    duration: soon\n",
		"lines:\n  - text: a\n    duration: [1, 2]\n",
		"lines: nope\n",
	}
	for _, doc := range tests {
		if _, err := ReadYAML(strings.NewReader(doc), DefaultHold); err == nil {
			t.Errorf("ReadYAML(%q) = nil error, want error", doc)
		}
	}
}

func TestParseHold(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr string
	}{
		{in: "2.5s", want: 2500 * time.Millisecond},
		{in: " 0.05 ", want: 50 * time.Millisecond},
		{in: "0", want: 0},
		{in: "-1", wantErr: "negative duration"},
		{in: "-1s", wantErr: "negative duration"},
		{in: "9999999999", wantErr: "out of range"},
		{in: "-9999999999", wantErr: "out of range"},
		{in: "1e300", wantErr: "out of range"},
		{in: "NaN", wantErr: "out of range"},
		{in: "Inf", wantErr: "out of range"},
		{in: "soon", wantErr: "invalid duration"},
	}
	for _, test := range tests {
		got, err := parseHold(test.in)
		if test.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("parseHold(%q) = %v, %v, want error containing %q", test.in, got, err, test.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseHold(%q) = error %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("parseHold(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}
