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
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is a conversation file format.
type Format int

const (
	// FormatYAML is a YAML document (.yaml, .yml).
	FormatYAML Format = iota

	// FormatScript is the plain-text script format (.dlg).
	FormatScript

	// FormatCompiled is the compact binary format (.dlgc).
	FormatCompiled
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "YAML"
	case FormatScript:
		return "Script"
	case FormatCompiled:
		return "Compiled"
	}
	return fmt.Sprintf("(invalid Format %d)", int(f))
}

// FormatForPath chooses a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".dlg":
		return FormatScript, nil
	case ".dlgc":
		return FormatCompiled, nil
	default:
		return 0, fmt.Errorf("unknown conversation file extension %q", ext)
	}
}

// LoadFile is a convenient way of loading a conversation from a file. The
// format is chosen by FormatForPath. Lines that don't specify a hold time
// are given defaultHold. If the conversation has no name, it is named after
// the file.
func LoadFile(path string, defaultHold time.Duration) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading conversation file: %w", err)
	}
	return loadBytes(path, data, defaultHold)
}

// LoadFS loads a conversation from the provided fs.FS. See LoadFile for
// more information.
func LoadFS(fsys fs.FS, path string, defaultHold time.Duration) (*Conversation, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading conversation file: %w", err)
	}
	return loadBytes(path, data, defaultHold)
}

func loadBytes(path string, data []byte, defaultHold time.Duration) (*Conversation, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	conv, err := readConversation(path, bytes.NewReader(data), format, defaultHold)
	if err != nil {
		return nil, err
	}
	if conv.Name == "" {
		base := filepath.Base(path)
		conv.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return conv, nil
}

// ReadConversation reads a conversation in the given format from r.
func ReadConversation(r io.Reader, format Format, defaultHold time.Duration) (*Conversation, error) {
	return readConversation("", r, format, defaultHold)
}

func readConversation(filename string, r io.Reader, format Format, defaultHold time.Duration) (*Conversation, error) {
	switch format {
	case FormatYAML:
		return ReadYAML(r, defaultHold)
	case FormatScript:
		return readScript(filename, r, defaultHold)
	case FormatCompiled:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading compiled conversation: %w", err)
		}
		return UnmarshalConversation(data)
	}
	return nil, fmt.Errorf("unsupported format %v", format)
}

// yamlConversation is the YAML layout of a conversation, e.g.
//
//	name: gate
//	monologue: false
//	lines:
//	  - speaker: Guard
//	    text: Halt! Who goes there?
//	    camera: gate_closeup
//	    animation: Point
//	    duration: 2.5s
type yamlConversation struct {
	Name      string     `yaml:"name"`
	Monologue bool       `yaml:"monologue"`
	Lines     []yamlLine `yaml:"lines"`
}

type yamlLine struct {
	Speaker   string        `yaml:"speaker"`
	Text      string        `yaml:"text"`
	Camera    string        `yaml:"camera"`
	Animation string        `yaml:"animation"`
	Duration  *yamlDuration `yaml:"duration"`
}

// yamlDuration accepts either a Go duration string ("2.5s") or a number of
// seconds (2.5).
type yamlDuration time.Duration

func (d *yamlDuration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	dur, err := parseHold(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = yamlDuration(dur)
	return nil
}

// parseHold parses a hold time, given either as a Go duration or as a
// number of seconds.
func parseHold(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		if math.IsNaN(secs) || math.Abs(secs) >= math.MaxInt64/float64(time.Second) {
			return 0, fmt.Errorf("duration %q out of range", s)
		}
		d = time.Duration(math.Round(secs * float64(time.Second)))
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// ReadYAML reads a YAML conversation from r.
func ReadYAML(r io.Reader, defaultHold time.Duration) (*Conversation, error) {
	var yc yamlConversation
	if err := yaml.NewDecoder(r).Decode(&yc); err != nil {
		return nil, fmt.Errorf("decoding conversation: %w", err)
	}
	conv := &Conversation{
		Name:        yc.Name,
		IsMonologue: yc.Monologue,
		Lines:       make([]Line, 0, len(yc.Lines)),
	}
	for _, yl := range yc.Lines {
		hold := defaultHold
		if yl.Duration != nil {
			hold = time.Duration(*yl.Duration)
		}
		conv.Lines = append(conv.Lines, Line{
			SpeakerID:        yl.Speaker,
			Text:             yl.Text,
			CameraShotID:     yl.Camera,
			AnimationTrigger: yl.Animation,
			DisplayDuration:  hold,
		})
	}
	return conv, nil
}
