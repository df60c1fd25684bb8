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
	"fmt"
	"strings"
)

// FormatLine prints a line in the script format. Newlines in the text are
// replaced with spaces.
func FormatLine(line Line, monologue bool) string {
	b := new(strings.Builder)
	b.WriteString(line.SpeakerID)
	var cues []string
	if line.CameraShotID != "" {
		cues = append(cues, "camera="+line.CameraShotID)
	}
	if line.AnimationTrigger != "" {
		cues = append(cues, "anim="+line.AnimationTrigger)
	}
	if monologue {
		cues = append(cues, "hold="+line.DisplayDuration.String())
	}
	if len(cues) > 0 {
		fmt.Fprintf(b, " {%s}", strings.Join(cues, " "))
	}
	b.WriteString(":")
	if text := strings.ReplaceAll(line.Text, "\n", " "); text != "" {
		b.WriteString(" " + text)
	}
	return b.String()
}

// FormatConversation prints a conversation in a format convenient for
// debugging. The output is close to the script format, but is intended for
// human consumption only and may change between incremental versions of
// this package.
func FormatConversation(conv *Conversation) string {
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "# %d lines\n", len(conv.Lines))
	if conv.Name != "" {
		fmt.Fprintf(sb, "@name %s\n", conv.Name)
	}
	if conv.IsMonologue {
		sb.WriteString("@monologue\n")
	}
	for _, line := range conv.Lines {
		fmt.Fprintln(sb, FormatLine(line, conv.IsMonologue))
	}
	return sb.String()
}
