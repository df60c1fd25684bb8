//go:build example
// +build example

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

// The dialoguerunner binary plays a conversation on the terminal, with the
// typewriter effect. Press ENTER to skip typing or continue.
//
// Quick usage from the root of the repo:
//
//	go run -tags example ./cmd/dialoguerunner testdata/gate.dlg
//
// The "example" build tag is used to prevent this being installed to
// ~/go/bin if you use the go get command.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/DrJosh9000/dialogue"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		settingsPath string
		logLevel     string
	)
	cmd := &cobra.Command{
		Use:   "dialoguerunner CONVERSATION_FILE",
		Short: "Play a conversation on the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetOutput(os.Stderr)
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)

			// A missing .env is fine.
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.WithError(err).Warn("Couldn't load .env")
			}
			settings, err := dialogue.LoadSettingsFile(settingsPath)
			if err != nil {
				return err
			}
			conv, err := dialogue.LoadFile(args[0], settings.DefaultHold)
			if err != nil {
				return err
			}
			return play(cmd.Context(), conv, settings, log)
		},
	}
	cmd.Flags().StringVar(&settingsPath, "settings", "", "YAML settings file")
	cmd.Flags().StringVar(&logLevel, "log-level", "warning", "Log level (debug, info, warning, error)")
	return cmd
}

func play(ctx context.Context, conv *dialogue.Conversation, settings dialogue.Settings, log logrus.FieldLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := new(dialogue.TickScheduler)
	term := &terminal{w: bufio.NewWriter(os.Stdout)}
	ctrl := dialogue.NewController(sched, term,
		dialogue.WithSettings(settings),
		dialogue.WithLogger(log),
		dialogue.WithLocomotion(term),
	)
	for _, line := range conv.Lines {
		ctrl.RegisterSpeaker(line.SpeakerID, termSpeaker{term: term, id: line.SpeakerID})
		if line.CameraShotID != "" {
			ctrl.RegisterCamera(line.CameraShotID, termCamera{term: term, id: line.CameraShotID})
		}
	}
	log.WithFields(logrus.Fields{
		"cameras":  ctrl.Cameras().IDs(),
		"speakers": ctrl.Speakers().IDs(),
	}).Debug("Scene ready")
	ctrl.Subscribe(func(s dialogue.State) {
		if !s.Active {
			cancel()
		}
	})
	loop := dialogue.NewLoop(ctrl, sched)

	if !conv.IsMonologue {
		go func() {
			sc := bufio.NewScanner(os.Stdin)
			for sc.Scan() {
				if err := loop.Advance(); err != nil {
					log.WithError(err).Debug("Dropped advance")
				}
			}
		}()
	}

	ctrl.StartConversation(conv)
	if err := loop.Run(ctx, settings.FrameInterval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	term.println("")
	return nil
}

// terminal implements dialogue.Display on the terminal. Only the loop
// goroutine writes to it.
type terminal struct {
	w    *bufio.Writer
	text string
}

func (t *terminal) SetText(text string) {
	if strings.HasPrefix(text, t.text) {
		// Typing: print only the new characters.
		fmt.Fprint(t.w, strings.TrimPrefix(text, t.text))
	} else {
		fmt.Fprintf(t.w, "\n%s", text)
	}
	t.text = text
	t.w.Flush()
}

func (t *terminal) SetSpeaker(label string) {
	t.println("\n\n" + label + ":")
	t.text = ""
}

func (t *terminal) Show() {}

func (t *terminal) Hide() { t.println("\n(The end)") }

func (t *terminal) FreezeMovement() { t.println("(Press ENTER to continue)") }

func (t *terminal) println(s string) {
	fmt.Fprintln(t.w, s)
	t.w.Flush()
}

type termSpeaker struct {
	term *terminal
	id   string
}

func (s termSpeaker) DisplayName() string { return s.id }

func (s termSpeaker) FireAnimationTrigger(trigger string) {
	s.term.println(fmt.Sprintf("\n*%s: %s*", s.id, trigger))
}

type termCamera struct {
	term *terminal
	id   string
}

func (c termCamera) Activate() { c.term.println(fmt.Sprintf("\n[cut to %s]", c.id)) }

func (c termCamera) Deactivate() {}
