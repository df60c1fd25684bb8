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
	"io"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ReadScript reads a conversation in the script format from r. A script
// looks like:
//
//	# The guard stops the player at the gate.
//	@name gate
//	Guard {camera=gate_closeup anim=Point}: Halt! Who goes there?
//	Player: Just a traveller.
//
// The @monologue directive makes the conversation a monologue, and the
// hold cue sets how long a monologue line stays up, e.g. {hold=2.5s}.
func ReadScript(r io.Reader, defaultHold time.Duration) (*Conversation, error) {
	return readScript("", r, defaultHold)
}

func readScript(filename string, r io.Reader, defaultHold time.Duration) (*Conversation, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	text := string(src)
	if !strings.HasSuffix(text, "\n") {
		// Every line, including the last, ends in a newline.
		text += "\n"
	}
	sf := new(scriptFile)
	if err := scriptParser.ParseString(filename, text, sf); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	return sf.conversation(defaultHold)
}

var (
	scriptLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Comment", Pattern: `#[^\n]*`, Action: nil},
			{Name: "Newline", Pattern: `\n`, Action: nil},
			{Name: "Whitespace", Pattern: `[ \t\r]+`, Action: nil},
			{Name: "Directive", Pattern: `@[A-Za-z_]\w*`, Action: nil},
			{Name: "CueOpen", Pattern: `\{`, Action: lexer.Push("Cue")},
			{Name: "Colon", Pattern: `:`, Action: lexer.Push("Text")},
			{Name: "Ident", Pattern: `[^\s:{}#@]+`, Action: nil},
		},
		"Cue": {
			{Name: "Whitespace", Pattern: `[ \t\r]+`, Action: nil},
			{Name: "Comma", Pattern: `,`, Action: nil},
			{Name: "Equals", Pattern: `=`, Action: nil},
			{Name: "CueClose", Pattern: `\}`, Action: lexer.Pop()},
			{Name: "Word", Pattern: `[^\s=,{}]+`, Action: nil},
		},
		// Everything after the colon, up to the end of the line, is text.
		"Text": {
			{Name: "Text", Pattern: `[^\n]+`, Action: nil},
			{Name: "Newline", Pattern: `\n`, Action: lexer.Pop()},
		},
	})

	scriptParser = participle.MustBuild(
		&scriptFile{},
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

type scriptFile struct {
	Entries []*scriptEntry `parser:"@@*"`
}

type scriptEntry struct {
	Directive *scriptDirective `parser:"  @@"`
	Line      *scriptLine      `parser:"| @@"`
	Blank     bool             `parser:"| @Newline"`
}

type scriptDirective struct {
	Pos  lexer.Position
	Name string `parser:"@Directive"`
	Arg  string `parser:"@Ident? Newline"`
}

type scriptLine struct {
	Pos     lexer.Position
	Speaker string       `parser:"@Ident"`
	Cues    []*scriptCue `parser:"( CueOpen ( @@ ( Comma? @@ )* )? CueClose )?"`
	Text    string       `parser:"Colon @Text? Newline"`
}

type scriptCue struct {
	Pos   lexer.Position
	Key   string `parser:"@Word Equals"`
	Value string `parser:"@Word"`
}

func (f *scriptFile) conversation(defaultHold time.Duration) (*Conversation, error) {
	conv := &Conversation{
		Lines: []Line{},
	}
	for _, e := range f.Entries {
		switch {
		case e.Directive != nil:
			if err := e.Directive.apply(conv); err != nil {
				return nil, err
			}
		case e.Line != nil:
			line, err := e.Line.line(defaultHold)
			if err != nil {
				return nil, err
			}
			conv.Lines = append(conv.Lines, line)
		}
	}
	return conv, nil
}

func (d *scriptDirective) apply(conv *Conversation) error {
	switch name := strings.TrimPrefix(d.Name, "@"); name {
	case "monologue":
		switch d.Arg {
		case "", "true":
			conv.IsMonologue = true
		case "false":
			conv.IsMonologue = false
		default:
			return fmt.Errorf("%v: @monologue takes true or false, not %q", d.Pos, d.Arg)
		}
	case "name":
		if d.Arg == "" {
			return fmt.Errorf("%v: @name needs a name", d.Pos)
		}
		conv.Name = d.Arg
	default:
		return fmt.Errorf("%v: unknown directive %q", d.Pos, d.Name)
	}
	return nil
}

func (l *scriptLine) line(defaultHold time.Duration) (Line, error) {
	line := Line{
		SpeakerID:       l.Speaker,
		Text:            strings.TrimSpace(l.Text),
		DisplayDuration: defaultHold,
	}
	for _, c := range l.Cues {
		switch c.Key {
		case "camera", "cam":
			line.CameraShotID = c.Value
		case "anim", "animation":
			line.AnimationTrigger = c.Value
		case "hold", "duration":
			d, err := parseHold(c.Value)
			if err != nil {
				return Line{}, fmt.Errorf("%v: %w", c.Pos, err)
			}
			line.DisplayDuration = d
		default:
			return Line{}, fmt.Errorf("%v: unknown cue %q", c.Pos, c.Key)
		}
	}
	return line, nil
}
