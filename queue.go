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

// Queue is the first-in-first-out backlog of lines still to be played in
// the active conversation. The zero value is an empty queue.
type Queue struct {
	lines []QueuedLine
}

// Load replaces the contents of the queue with the lines of conv, stamping
// each with conv.IsMonologue.
func (q *Queue) Load(conv *Conversation) {
	lines := make([]QueuedLine, 0, len(conv.Lines))
	for _, l := range conv.Lines {
		lines = append(lines, QueuedLine{
			Line:               l,
			BelongsToMonologue: conv.IsMonologue,
		})
	}
	q.lines = lines
}

// Len returns the number of lines in the queue.
func (q *Queue) Len() int { return len(q.lines) }

// Pop removes and returns the line at the head of the queue.
func (q *Queue) Pop() (QueuedLine, bool) {
	if len(q.lines) == 0 {
		return QueuedLine{}, false
	}
	l := q.lines[0]
	q.lines[0] = QueuedLine{}
	q.lines = q.lines[1:]
	return l, true
}

// Peek returns the line at the head of the queue without removing it.
func (q *Queue) Peek() (QueuedLine, bool) {
	if len(q.lines) == 0 {
		return QueuedLine{}, false
	}
	return q.lines[0], true
}

// Monologue reports whether the next line belongs to a monologue. An empty
// queue is not a monologue.
func (q *Queue) Monologue() bool {
	l, ok := q.Peek()
	return ok && l.BelongsToMonologue
}

// Clear empties the queue.
func (q *Queue) Clear() { q.lines = nil }

// Lines returns a copy of the queued lines, head first.
func (q *Queue) Lines() []QueuedLine {
	return append([]QueuedLine(nil), q.lines...)
}
