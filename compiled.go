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
	"fmt"
	"os"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// The compiled format is the protobuf wire encoding of these messages:
//
//	message Conversation {
//	  string name = 1;
//	  bool monologue = 2;
//	  repeated Line lines = 3;
//	}
//	message Line {
//	  string speaker_id = 1;
//	  string text = 2;
//	  string camera_shot_id = 3;
//	  string animation_trigger = 4;
//	  int64 display_duration_nanos = 5;
//	}
const (
	convFieldName      protowire.Number = 1
	convFieldMonologue protowire.Number = 2
	convFieldLines     protowire.Number = 3

	lineFieldSpeaker   protowire.Number = 1
	lineFieldText      protowire.Number = 2
	lineFieldCamera    protowire.Number = 3
	lineFieldAnimation protowire.Number = 4
	lineFieldDuration  protowire.Number = 5
)

// MarshalConversation encodes a conversation in the compiled format.
func MarshalConversation(conv *Conversation) []byte {
	var b []byte
	b = appendString(b, convFieldName, conv.Name)
	if conv.IsMonologue {
		b = protowire.AppendTag(b, convFieldMonologue, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	for _, l := range conv.Lines {
		b = protowire.AppendTag(b, convFieldLines, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalLine(l))
	}
	return b
}

func marshalLine(l Line) []byte {
	var b []byte
	b = appendString(b, lineFieldSpeaker, l.SpeakerID)
	b = appendString(b, lineFieldText, l.Text)
	b = appendString(b, lineFieldCamera, l.CameraShotID)
	b = appendString(b, lineFieldAnimation, l.AnimationTrigger)
	if l.DisplayDuration != 0 {
		b = protowire.AppendTag(b, lineFieldDuration, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(l.DisplayDuration))
	}
	return b
}

// appendString appends a string field, omitting it if empty.
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// UnmarshalConversation decodes a conversation in the compiled format.
// Unknown fields are skipped.
func UnmarshalConversation(b []byte) (*Conversation, error) {
	conv := &Conversation{
		Lines: []Line{},
	}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("unmarshaling conversation: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == convFieldName && typ == protowire.BytesType:
			conv.Name, n = protowire.ConsumeString(b)
		case num == convFieldMonologue && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			conv.IsMonologue = protowire.DecodeBool(v)
		case num == convFieldLines && typ == protowire.BytesType:
			var lb []byte
			lb, n = protowire.ConsumeBytes(b)
			if n < 0 {
				break
			}
			line, err := unmarshalLine(lb)
			if err != nil {
				return nil, fmt.Errorf("unmarshaling line %d: %w", len(conv.Lines), err)
			}
			conv.Lines = append(conv.Lines, line)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, fmt.Errorf("unmarshaling conversation field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return conv, nil
}

func unmarshalLine(b []byte) (Line, error) {
	var l Line
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Line{}, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == lineFieldSpeaker && typ == protowire.BytesType:
			l.SpeakerID, n = protowire.ConsumeString(b)
		case num == lineFieldText && typ == protowire.BytesType:
			l.Text, n = protowire.ConsumeString(b)
		case num == lineFieldCamera && typ == protowire.BytesType:
			l.CameraShotID, n = protowire.ConsumeString(b)
		case num == lineFieldAnimation && typ == protowire.BytesType:
			l.AnimationTrigger, n = protowire.ConsumeString(b)
		case num == lineFieldDuration && typ == protowire.VarintType:
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			l.DisplayDuration = time.Duration(v)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return Line{}, fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	if l.DisplayDuration < 0 {
		return Line{}, fmt.Errorf("negative duration %v", l.DisplayDuration)
	}
	return l, nil
}

// WriteCompiledFile writes a conversation to a file in the compiled format.
func WriteCompiledFile(path string, conv *Conversation) error {
	if err := os.WriteFile(path, MarshalConversation(conv), 0o644); err != nil {
		return fmt.Errorf("writing compiled conversation: %w", err)
	}
	return nil
}
